package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/config"
	"github.com/butters-makana/payroll-backend-go/internal/domain/insurance"
	"github.com/butters-makana/payroll-backend-go/internal/domain/maternity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/recurring"
	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	appHTTP "github.com/butters-makana/payroll-backend-go/internal/handler/http"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/butters-makana/payroll-backend-go/internal/repository/postgresql"
	activityService "github.com/butters-makana/payroll-backend-go/internal/service/activity"
	serviceAuth "github.com/butters-makana/payroll-backend-go/internal/service/auth"
	dashboardService "github.com/butters-makana/payroll-backend-go/internal/service/dashboard"
	employeeService "github.com/butters-makana/payroll-backend-go/internal/service/employee"
	insuranceService "github.com/butters-makana/payroll-backend-go/internal/service/insurance"
	maternityService "github.com/butters-makana/payroll-backend-go/internal/service/maternity"
	payrollService "github.com/butters-makana/payroll-backend-go/internal/service/payroll"
	recurringService "github.com/butters-makana/payroll-backend-go/internal/service/recurring"
	reportService "github.com/butters-makana/payroll-backend-go/internal/service/report"
	userService "github.com/butters-makana/payroll-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logLevel := parseLogLevel(cfg.App.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", cfg.App.Version),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: time.Hour,
		ConnectTimeout:  10 * time.Second,
	})
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, logger); err != nil {
			logger.Error("Error running migrations", "error", err)
			os.Exit(1)
		}
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	tokenRepo := postgresql.NewRefreshTokenRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	recordRepo := postgresql.NewPayrollRecordRepository(db)
	deductionRepo := postgresql.NewRecurringDeductionRepository(db)
	policyRepo := postgresql.NewInsurancePolicyRepository(db)
	paymentRepo := postgresql.NewPolicyPaymentRepository(db)
	maternityRepo := postgresql.NewMaternityRecordRepository(db)
	exportRepo := postgresql.NewExportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := serviceAuth.NewAuthService(transactor, userRepo, tokenRepo, activityRepo, JWTService)
	userSvc := userService.NewUserService(transactor, userRepo, activityRepo, tokenRepo, JWTService)
	recordSvc := payrollService.NewRecordService(transactor, recordRepo, employeeRepo, activityRepo)
	deductionSvc := recurringService.NewDeductionService(transactor, deductionRepo, activityRepo)
	policySvc := insuranceService.NewPolicyService(transactor, policyRepo, paymentRepo, activityRepo)
	maternitySvc := maternityService.NewRecordService(transactor, maternityRepo, activityRepo)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, activityRepo)
	exportSvc := reportService.NewExportService(transactor, exportRepo, recordRepo, activityRepo)
	activitySvc := activityService.NewActivityService(activityRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, recordSvc, activityRepo)

	if cfg.SeedAdmin() {
		seed := user.CreateUserRequest{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			FullName: cfg.Admin.FullName,
			Role:     string(user.RoleAdmin),
		}
		if cfg.Admin.Email != "" {
			seed.Email = &cfg.Admin.Email
		}
		if _, err := userSvc.SeedAdmin(ctx, seed); err != nil {
			logger.Error("Error seeding admin account", "error", err)
			os.Exit(1)
		}
	}

	registry := schema.NewRegistry(
		payroll.Schemas(),
		[]schema.Schema{recurring.FormSchema()},
		insurance.Schemas(),
		[]schema.Schema{maternity.FormSchema()},
	)

	handlers := appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(JWTService, authSvc),
		User:      appHTTP.NewUserHandler(userSvc),
		Schema:    appHTTP.NewSchemaHandler(registry),
		Record:    appHTTP.NewRecordHandler(recordSvc),
		Recurring: appHTTP.NewRecurringDeductionHandler(deductionSvc),
		Insurance: appHTTP.NewInsuranceHandler(policySvc),
		Maternity: appHTTP.NewMaternityHandler(maternitySvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Export:    appHTTP.NewExportHandler(exportSvc),
		Activity:  appHTTP.NewActivityHandler(activitySvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(JWTService, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		LogLevel:       logLevel,
	}, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
