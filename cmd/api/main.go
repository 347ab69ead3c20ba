package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "loan-analytics/internal/adapter/http"
	appmw "loan-analytics/internal/adapter/middleware"
	"loan-analytics/internal/adapter/repository/mysql"
	"loan-analytics/internal/config"
	"loan-analytics/internal/domain/mart"
	"loan-analytics/internal/domain/run"
	"loan-analytics/internal/domain/staging"
	"loan-analytics/internal/infrastructure/cache"
	"loan-analytics/internal/infrastructure/db"
	"loan-analytics/internal/usecase/pipeline"
)

// migrate creates the derived tables. The raw tables are the loader's
// contract and are never touched here.
func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&staging.StagedLoan{},
		&staging.StagedPayment{},
		&mart.LoanDetail{},
		&mart.MonthlySummary{},
		&run.PipelineRun{},
	)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	martRepo := mysql.NewMartRepository(gdb)
	runRepo := mysql.NewRunRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	summaryCache := cache.NewSummaryCache(rdb, time.Duration(cfg.SummaryCacheTTLSecs)*time.Second)

	pipelineUC := pipeline.NewUsecase(uow, runRepo, martRepo, summaryCache)

	h := httpadp.NewHandler()
	runH := httpadp.NewRunHandler(pipelineUC)
	martH := httpadp.NewMartHandler(martRepo, summaryCache)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/runs", runH.TriggerRun, idemp)
	e.GET("/runs/:run_id", runH.GetRun)
	e.GET("/loan-details", martH.ListLoanDetails)
	e.GET("/monthly-loans", martH.ListMonthlySummaries)
	e.GET("/quality/grain", runH.GrainCheck)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
