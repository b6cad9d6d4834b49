package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/cors"

	"github.com/frahmantamala/bizmanager/internal/accounting"
	"github.com/frahmantamala/bizmanager/internal/auth"
	"github.com/frahmantamala/bizmanager/internal/crm"
	"github.com/frahmantamala/bizmanager/internal/dashboard"
	"github.com/frahmantamala/bizmanager/internal/hr"
	"github.com/frahmantamala/bizmanager/internal/marketplace"
	"github.com/frahmantamala/bizmanager/internal/operations"
	"github.com/frahmantamala/bizmanager/internal/transport/middleware"
	"github.com/frahmantamala/bizmanager/internal/transport/swagger"
	"github.com/frahmantamala/bizmanager/internal/user"
)

// Handlers groups every API handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Dashboard *dashboard.Handler

	Customers  *crm.CustomerHandler
	Complaints *crm.ComplaintHandler

	Employees   *hr.EmployeeHandler
	Departments *hr.DepartmentHandler
	Teams       *hr.TeamHandler
	TeamMembers *hr.TeamMemberHandler
	TeamRoster  *hr.TeamRosterHandler

	Products *marketplace.ProductHandler

	Tasks    *operations.TaskHandler
	Projects *operations.ProjectHandler
	Meetings *operations.MeetingHandler

	FinancialRecords *accounting.FinancialRecordHandler
	Budgets          *accounting.BudgetHandler
}

type Options struct {
	AllowedOrigins []string
	Health         *HealthHandler
	Metrics        *middleware.Metrics
	MetricsPath    string
	RateLimiter    *middleware.RateLimiter
	// MaxBodyBytes caps API request bodies; zero means the middleware default.
	MaxBodyBytes int64
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Instrument)
	}
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler)

	router.Get("/openapi.yml", OpenAPIHandler)
	router.Handle("/swagger/*", swagger.Handler())

	if opts.Health != nil {
		router.Get("/health", opts.Health.healthCheckHandler)
		router.Get("/ping", opts.Health.pingHandler)
	}
	if opts.Metrics != nil && opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, opts.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(opts.MaxBodyBytes))
		r.Use(middleware.LoggingMiddleware)

		// Public routes, limited per client IP
		r.Group(func(pub chi.Router) {
			pub.Use(opts.RateLimiter.Handler)
			h.Auth.PublicRoutes(pub)
		})

		// Protected routes, limited per user
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(opts.RateLimiter.Handler)

			h.Auth.Routes(pr)
			h.User.Routes(pr)
			pr.Route("/dashboard", h.Dashboard.Routes)

			pr.Route("/customers", h.Customers.Routes)
			pr.Route("/complaints", h.Complaints.Routes)

			pr.Route("/employees", h.Employees.Routes)
			pr.Route("/departments", h.Departments.Routes)
			pr.Route("/teams", func(tr chi.Router) {
				h.Teams.Routes(tr)
				tr.Route("/{teamId}/members", h.TeamRoster.Routes)
			})
			pr.Route("/team-members", func(mr chi.Router) {
				mr.Get("/{id}", h.TeamMembers.Get)
				mr.Put("/{id}", h.TeamMembers.Update)
				mr.Delete("/{id}", h.TeamMembers.Delete)
			})

			pr.Route("/products", h.Products.Routes)

			pr.Route("/tasks", h.Tasks.Routes)
			pr.Route("/projects", h.Projects.Routes)
			pr.Route("/meetings", h.Meetings.Routes)

			pr.Route("/financial-records", h.FinancialRecords.Routes)
			pr.Route("/budgets", h.Budgets.Routes)
		})
	})

	logger.Info("routes registered")
}
