package http

import (
	"net/http"
	"strconv"

	loanDomain "loan-origination/internal/domain/loan"
	loanUC "loan-origination/internal/usecase/loan"
	"loan-origination/internal/usecase/submission"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct {
	loans      *loanUC.Usecase
	submission *submission.Usecase
}

func NewLoanHandler(loans *loanUC.Usecase, sub *submission.Usecase) *LoanHandler {
	return &LoanHandler{loans: loans, submission: sub}
}

type submitReq struct {
	LoanAmount  float64 `json:"loan_amount"`
	LoanType    string  `json:"loan_type"`
	LoanPurpose string  `json:"loan_purpose"`
	LoanTerm    int     `json:"loan_term"`
}

// Submit converts the caller's draft into a loan. Field presence is checked
// by the usecase so the response lists every missing field at once.
func (h *LoanHandler) Submit(c echo.Context) error {
	ownerID, _ := subjectFrom(c)
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	res, err := h.submission.Submit(c.Request().Context(), ownerID, submission.SubmitInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	ownerID, role := subjectFrom(c)
	loans, err := h.loans.List(c.Request().Context(), ownerID, role)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

// MyApplications lists the caller's loans still awaiting review.
func (h *LoanHandler) MyApplications(c echo.Context) error {
	ownerID, _ := subjectFrom(c)
	loans, err := h.loans.ListPending(c.Request().Context(), ownerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	ownerID, role := subjectFrom(c)
	l, err := h.loans.Get(c.Request().Context(), ownerID, role, c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type paymentStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending paid overdue"`
}

func (h *LoanHandler) UpdatePaymentStatus(c echo.Context) error {
	ownerID, role := subjectFrom(c)
	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil || seq < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid schedule entry sequence"})
	}
	var req paymentStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	l, err := h.loans.UpdatePaymentStatus(c.Request().Context(), ownerID, role,
		c.Param("loan_id"), seq, loanDomain.PaymentStatus(req.Status))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type addNoteReq struct {
	Content string `json:"content" validate:"required"`
}

func (h *LoanHandler) AddNote(c echo.Context) error {
	ownerID, role := subjectFrom(c)
	var req addNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	l, err := h.loans.AddNote(c.Request().Context(), ownerID, role, c.Param("loan_id"), req.Content)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}
