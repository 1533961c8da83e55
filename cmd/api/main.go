package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loan-origination/internal/adapter/http"
	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/config"
	loanDomain "loan-origination/internal/domain/loan"
	"loan-origination/internal/infrastructure/cache"
	"loan-origination/internal/infrastructure/db"
	appUC "loan-origination/internal/usecase/application"
	loanUC "loan-origination/internal/usecase/loan"
	"loan-origination/internal/usecase/submission"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	appRepo := mysql.NewApplicationRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	applications := appUC.NewUsecase(appRepo, guow)
	loans := loanUC.NewUsecase(loanRepo)
	submissions := submission.NewUsecase(guow, loanDomain.FixedRatePricing(cfg.InterestRate), nil)

	h := httpadp.NewHandler()
	appHandler := httpadp.NewApplicationHandler(applications)
	loanHandler := httpadp.NewLoanHandler(loans, submissions)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/api/loans", middleware.Identity())
	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	api.POST("/personal-info", appHandler.SavePersonalInfo, idemp)
	api.POST("/loan-details", appHandler.SaveLoanDetails, idemp)
	api.POST("/financial-info", appHandler.SaveFinancialInfo, idemp)
	api.POST("/documents", appHandler.SaveDocuments, idemp)
	api.POST("/submit", loanHandler.Submit, idemp)
	api.GET("/status", appHandler.Status)
	api.GET("/my-applications", loanHandler.MyApplications)
	api.GET("", loanHandler.ListLoans)
	api.GET("/:loan_id", loanHandler.GetLoan)
	api.PUT("/:loan_id/payment/:seq", loanHandler.UpdatePaymentStatus, idemp)
	api.POST("/:loan_id/notes", loanHandler.AddNote, idemp)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
