package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// idempHeaders is the validated deduplication envelope of a mutating request.
type idempHeaders struct {
	requestID string
	requestAt time.Time
	subjectID string
}

// parseIdempHeaders validates the envelope; a non-empty return message is
// the client-facing rejection reason.
func parseIdempHeaders(req *http.Request) (idempHeaders, string) {
	var h idempHeaders

	h.requestID = strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
	if h.requestID == "" {
		return h, "missing Ax-Request-Id"
	}
	if !validReqID(h.requestID) {
		return h, "invalid Ax-Request-Id format"
	}

	at, err := parseAxRequestAt(req.Header.Get("Ax-Request-At"))
	if err != nil {
		return h, err.Error()
	}
	now := nowUTC()
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return h, "Ax-Request-At too skewed"
	}
	h.requestAt = at

	h.subjectID = strings.TrimSpace(req.Header.Get(HeaderSubjectID))
	if h.subjectID == "" {
		return h, "missing " + HeaderSubjectID
	}
	if !reHex32.MatchString(h.subjectID) {
		return h, "invalid " + HeaderSubjectID
	}
	return h, ""
}

func validReqID(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseAxRequestAt accepts epoch seconds, epoch milliseconds, or
// RFC3339/RFC3339Nano with an explicit timezone. Naive local timestamps are
// rejected.
func parseAxRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing Ax-Request-At")
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 { // milliseconds
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("Ax-Request-At must be epoch (s/ms) or RFC3339 with timezone")
}

func bodyHash(b []byte) string {
	s := sha256.Sum256(b)
	return hex.EncodeToString(s[:])
}

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, path, subjectID, requestID string) string {
	return "idemp:ax:" + strings.ToLower(method) + ":" + path + ":" + subjectID + ":" + requestID
}

func provisionalSet(ctx context.Context, rdb *redis.Client, key string, entry idempEntry) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	_ = json.Unmarshal(v, &e)
	return e, nil
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, entry idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
