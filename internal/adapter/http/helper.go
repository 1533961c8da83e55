package http

import (
	"errors"
	"net/http"

	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
	loanDomain "loan-origination/internal/domain/loan"
	"loan-origination/internal/usecase/submission"

	"github.com/labstack/echo/v4"
)

// Context keys are owned by the identity middleware; the aliases keep the
// handlers reading exactly what it wrote.
const (
	CtxSubjectID   = middleware.CtxSubjectID
	CtxSubjectRole = middleware.CtxSubjectRole
)

func subjectFrom(c echo.Context) (id, role string) {
	if v, ok := c.Get(CtxSubjectID).(string); ok {
		id = v
	}
	if v, ok := c.Get(CtxSubjectRole).(string); ok {
		role = v
	}
	return id, role
}

// writeDomainError maps core errors onto status codes. Validation failures
// keep their field details; commit failures stay opaque so clients can
// retry the whole submission.
func writeDomainError(c echo.Context, err error) error {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		details := make([]FieldError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			details = append(details, FieldError(f))
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
	case errors.Is(err, application.ErrNoDraft):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, loanDomain.ErrEntryNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, submission.ErrCommitFailed):
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: submission.ErrCommitFailed.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
