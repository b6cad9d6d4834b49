package rest

import (
	"log/slog"

	"github.com/frahmantamala/bizmanager/internal/accounting"
	"github.com/frahmantamala/bizmanager/internal/auth"
	"github.com/frahmantamala/bizmanager/internal/crm"
	"github.com/frahmantamala/bizmanager/internal/dashboard"
	"github.com/frahmantamala/bizmanager/internal/hr"
	"github.com/frahmantamala/bizmanager/internal/marketplace"
	"github.com/frahmantamala/bizmanager/internal/operations"
	"github.com/frahmantamala/bizmanager/internal/resource"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
	"github.com/frahmantamala/bizmanager/internal/user"
)

// HandlerDeps is what every handler is built from.
type HandlerDeps struct {
	Base         *transport.BaseHandler
	Store        storage.Storage
	Bus          resource.Publisher
	Feed         dashboard.ActivityFeed
	Auth         auth.ServiceAPI
	CookieSecure bool
	Logger       *slog.Logger
}

// NewHandlers wires one service and handler per record kind over deps.Store.
func NewHandlers(deps HandlerDeps) Handlers {
	base, store, bus, lg := deps.Base, deps.Store, deps.Bus, deps.Logger

	teamService := hr.NewTeamService(store, store, store, bus, lg)
	teamMemberService := hr.NewTeamMemberService(store, store, store, bus, lg)
	teamMemberHandler := hr.NewTeamMemberHandler(base, teamMemberService)

	return Handlers{
		Auth:      auth.NewHandler(base, deps.Auth, deps.CookieSecure),
		User:      user.NewHandler(base, user.NewService(store, lg)),
		Dashboard: dashboard.NewHandler(base, store, deps.Feed),

		Customers:  crm.NewCustomerHandler(base, crm.NewCustomerService(store, bus, lg)),
		Complaints: crm.NewComplaintHandler(base, crm.NewComplaintService(store, store, bus, lg)),

		Employees:   hr.NewEmployeeHandler(base, hr.NewEmployeeService(store, store, bus, lg)),
		Departments: hr.NewDepartmentHandler(base, hr.NewDepartmentService(store, store, bus, lg)),
		Teams:       hr.NewTeamHandler(base, teamService),
		TeamMembers: teamMemberHandler,
		TeamRoster:  hr.NewTeamRosterHandler(base, teamService, teamMemberService, teamMemberHandler),

		Products: marketplace.NewProductHandler(base, marketplace.NewProductService(store, bus, lg)),

		Tasks:    operations.NewTaskHandler(base, operations.NewTaskService(store, store, store, store, bus, lg)),
		Projects: operations.NewProjectHandler(base, operations.NewProjectService(store, store, bus, lg)),
		Meetings: operations.NewMeetingHandler(base, operations.NewMeetingService(store, store, store, bus, lg)),

		FinancialRecords: accounting.NewFinancialRecordHandler(base, accounting.NewFinancialRecordService(store, bus, lg)),
		Budgets:          accounting.NewBudgetHandler(base, accounting.NewBudgetService(store, store, store, bus, lg)),
	}
}
