package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/middleware"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	AllowedOrigins []string
	Version        string
	Env            string
	LogLevel       slog.Level
}

type Handlers struct {
	Auth      AuthHandler
	User      UserHandler
	Schema    SchemaHandler
	Record    RecordHandler
	Recurring RecurringDeductionHandler
	Insurance InsuranceHandler
	Maternity MaternityHandler
	Employee  EmployeeHandler
	Export    ExportHandler
	Activity  ActivityHandler
	Dashboard DashboardHandler
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	can := func(p user.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(p)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/schemas", func(r chi.Router) {
				r.Use(can(user.PermissionRecordsView))
				r.Get("/", h.Schema.List)
				r.Get("/{form}", h.Schema.Get)
			})

			r.Route("/records", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Record.List)
				r.With(can(user.PermissionRecordsView)).Get("/summary", h.Record.Summary)
				r.With(can(user.PermissionRecordsArchive)).Post("/archive", h.Record.Archive)

				r.Route("/{kind}", func(r chi.Router) {
					r.With(can(user.PermissionRecordsView)).Get("/", h.Record.ListKind)
					r.With(can(user.PermissionRecordsCreate)).Post("/", h.Record.Create)
					r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Record.Get)
					r.With(can(user.PermissionRecordsUpdate)).Put("/{id}", h.Record.Update)
					r.With(can(user.PermissionRecordsUpdate)).Patch("/{id}", h.Record.Update)
					r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Record.Delete)
				})
			})

			r.Route("/recurring-deductions", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Recurring.List)
				r.With(can(user.PermissionRecordsCreate)).Post("/", h.Recurring.Create)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Recurring.Get)
				r.With(can(user.PermissionRecordsUpdate)).Put("/{id}", h.Recurring.Update)
				r.With(can(user.PermissionRecordsUpdate)).Patch("/{id}", h.Recurring.Update)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Recurring.Delete)
			})

			r.Route("/insurance-policies", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Insurance.ListPolicies)
				r.With(can(user.PermissionRecordsCreate)).Post("/", h.Insurance.CreatePolicy)

				r.Route("/{id}", func(r chi.Router) {
					r.With(can(user.PermissionRecordsView)).Get("/", h.Insurance.GetPolicy)
					r.With(can(user.PermissionRecordsUpdate)).Put("/", h.Insurance.UpdatePolicy)
					r.With(can(user.PermissionRecordsUpdate)).Patch("/", h.Insurance.UpdatePolicy)
					r.With(can(user.PermissionRecordsDelete)).Delete("/", h.Insurance.DeletePolicy)

					r.With(can(user.PermissionRecordsView)).Get("/payments", h.Insurance.ListPayments)
					r.With(can(user.PermissionRecordsCreate)).Post("/payments", h.Insurance.AddPayment)
					r.With(can(user.PermissionRecordsDelete)).Delete("/payments/{paymentId}", h.Insurance.DeletePayment)
				})
			})

			r.Route("/maternity-records", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Maternity.List)
				r.With(can(user.PermissionRecordsCreate)).Post("/", h.Maternity.Create)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Maternity.Get)
				r.With(can(user.PermissionRecordsUpdate)).Put("/{id}", h.Maternity.Update)
				r.With(can(user.PermissionRecordsUpdate)).Patch("/{id}", h.Maternity.Update)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Maternity.Delete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(can(user.PermissionEmployeesView)).Get("/", h.Employee.ListEmployees)
				r.With(can(user.PermissionEmployeesView)).Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionEmployeesManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Patch("/{id}", h.Employee.UpdateEmployee)
					r.Post("/{id}/terminate", h.Employee.TerminateEmployee)
				})
			})

			r.Route("/exports", func(r chi.Router) {
				r.With(can(user.PermissionReportsView)).Get("/", h.Export.List)
				r.With(can(user.PermissionReportsView)).Get("/{id}", h.Export.Get)
				r.With(can(user.PermissionExportsCreate)).Post("/", h.Export.Record)
			})

			r.With(can(user.PermissionActivityView)).Get("/activity-logs", h.Activity.List)
			r.With(can(user.PermissionReportsView)).Get("/dashboard", h.Dashboard.GetDashboard)

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(can(user.PermissionUsersManage))
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Patch("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Deactivate)
			})
		})
	})
	return r
}
