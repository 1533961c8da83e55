package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// provisionalLockTTL bounds how long a crashed handler can hold the
	// in-progress lock before retries get through again.
	provisionalLockTTL = 60 * time.Second
	// maxClockSkew is the tolerated client/server drift on Ax-Request-At.
	maxClockSkew = 10 * time.Minute

	storeTimeout = 2 * time.Second
)

// idempEntry is the Redis payload for one request id: first provisional
// (in-progress), then final with the recorded response.
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// respRecorder tees the handler's response so the final entry can replay it.
type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }

func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}

func (r *respRecorder) WriteHeader(statusCode int) {
	r.code = statusCode
	r.w.WriteHeader(statusCode)
}

// IdempotencyMiddleware deduplicates mutating requests. The key is
// method + route + subject id + Ax-Request-Id: a finished response is
// replayed verbatim, an in-flight duplicate conflicts, and a reused request
// id with a different body is rejected outright.
//
// Ax-Request-At must be epoch (seconds or ms) or RFC3339 with a timezone.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			hdr, herr := parseIdempHeaders(req)
			if herr != "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": herr})
			}

			// Buffer the body so both the hash and the handler can read it.
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(req.Method, c.Path(), hdr.subjectID, hdr.requestID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			won, err := provisionalSet(ctx, rdb, key, idempEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.requestAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !won {
				return replayOrConflict(ctx, c, rdb, key, bhash)
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			final := idempEntry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.requestAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			_ = saveFinal(context.Background(), rdb, key, final, ttl)
			return nil
		}
	}
}

// replayOrConflict decides the duplicate's fate from the stored entry.
func replayOrConflict(ctx context.Context, c echo.Context, rdb *redis.Client, key, bhash string) error {
	cur, err := loadEntry(ctx, rdb, key)
	if err != nil {
		log.Printf("idempotency: load %s failed: %v", key, err)
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Ax-Request-Id reused with different body"})
	}
	// A finished entry replays even with an empty body; only Code==0 (still
	// provisional or missing) means the first attempt has not completed.
	if !cur.InProgress && cur.Code != 0 {
		return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
	}
	return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
}
