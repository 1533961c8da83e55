package http

import (
	"net/http"

	"loan-origination/internal/domain/application"
	appUC "loan-origination/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *appUC.Usecase }

func NewApplicationHandler(uc *appUC.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type personalInfoReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// SavePersonalInfo is step 1; it creates the draft on first call.
func (h *ApplicationHandler) SavePersonalInfo(c echo.Context) error {
	ownerID, _ := subjectFrom(c)
	var req personalInfoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	d, err := h.uc.SavePersonalInfo(c.Request().Context(), ownerID, application.PersonalInfo(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

type loanDetailsReq struct {
	LoanType    string  `json:"loan_type"    validate:"required,oneof=personal business education home"`
	LoanAmount  float64 `json:"loan_amount"  validate:"required,gt=0"`
	LoanTerm    int     `json:"loan_term"    validate:"required,gte=6,lte=360"`
	LoanPurpose string  `json:"loan_purpose" validate:"required"`
}

func (h *ApplicationHandler) SaveLoanDetails(c echo.Context) error {
	ownerID, _ := subjectFrom(c)
	var req loanDetailsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	d, err := h.uc.SaveLoanDetails(c.Request().Context(), ownerID, application.LoanDetails(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

type financialInfoReq struct {
	EmploymentStatus string  `json:"employment_status"`
	EmployerName     string  `json:"employer_name"`
	MonthlyIncome    float64 `json:"monthly_income"`
	OtherIncome      float64 `json:"other_income"`
	CreditScoreRange string  `json:"credit_score_range"`
}

func (h *ApplicationHandler) SaveFinancialInfo(c echo.Context) error {
	ownerID, _ := subjectFrom(c)
	var req financialInfoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	d, err := h.uc.SaveFinancialInfo(c.Request().Context(), ownerID, application.FinancialInfo(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Document references arrive pre-resolved by the content store; this layer
// never sees raw bytes.
type documentsReq struct {
	PhotoIDRef       *string `json:"photo_id_ref"`
	IncomeProofRef   *string `json:"income_proof_ref"`
	IdentityVerified bool    `json:"identity_verified"`
	IncomeVerified   bool    `json:"income_verified"`
	TermsAccepted    bool    `json:"terms_accepted"`
}

func (h *ApplicationHandler) SaveDocuments(c echo.Context) error {
	ownerID, _ := subjectFrom(c)
	var req documentsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	d, err := h.uc.SaveDocuments(c.Request().Context(), ownerID, appUC.DocumentsInput{
		PhotoIDRef:       req.PhotoIDRef,
		IncomeProofRef:   req.IncomeProofRef,
		IdentityVerified: req.IdentityVerified,
		IncomeVerified:   req.IncomeVerified,
		TermsAccepted:    req.TermsAccepted,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Status lists all of the caller's applications, newest first.
func (h *ApplicationHandler) Status(c echo.Context) error {
	ownerID, _ := subjectFrom(c)
	apps, err := h.uc.ListApplications(c.Request().Context(), ownerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, apps)
}
