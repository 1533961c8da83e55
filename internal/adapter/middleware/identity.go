package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Identity assertion headers, produced upstream by the credential service.
// This service never validates credentials itself; it trusts the asserted
// (subject, role) pair.
const (
	HeaderSubjectID   = "Ax-Subject-Id"
	HeaderSubjectRole = "Ax-Subject-Role"

	CtxSubjectID   = "subject_id"
	CtxSubjectRole = "subject_role"

	defaultRole = "borrower"
)

// Identity extracts the asserted subject into the request context. Requests
// without a well-formed subject id are rejected before any handler runs.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subjectID := strings.TrimSpace(c.Request().Header.Get(HeaderSubjectID))
			if subjectID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderSubjectID})
			}
			if !reHex32.MatchString(subjectID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid " + HeaderSubjectID})
			}
			role := strings.TrimSpace(c.Request().Header.Get(HeaderSubjectRole))
			if role == "" {
				role = defaultRole
			}
			c.Set(CtxSubjectID, subjectID)
			c.Set(CtxSubjectRole, role)
			return next(c)
		}
	}
}
