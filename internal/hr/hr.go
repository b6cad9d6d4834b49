// Package hr serves employees, departments, teams and team membership.
package hr

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/bizmanager/internal"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	"github.com/frahmantamala/bizmanager/internal/resource"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

type (
	EmployeeService   = resource.Service[*hrDatamodel.Employee, storage.EmployeeFilter]
	EmployeeHandler   = resource.Handler[*hrDatamodel.Employee, storage.EmployeeFilter, CreateEmployeeDTO]
	DepartmentService = resource.Service[*hrDatamodel.Department, struct{}]
	DepartmentHandler = resource.Handler[*hrDatamodel.Department, struct{}, CreateDepartmentDTO]
	TeamService       = resource.Service[*hrDatamodel.Team, storage.TeamFilter]
	TeamHandler       = resource.Handler[*hrDatamodel.Team, storage.TeamFilter, CreateTeamDTO]
	TeamMemberService = resource.Service[*hrDatamodel.TeamMember, TeamMemberFilter]
	TeamMemberHandler = resource.Handler[*hrDatamodel.TeamMember, TeamMemberFilter, CreateTeamMemberDTO]
)

func NewEmployeeService(store storage.EmployeeStore, departments storage.DepartmentStore, bus resource.Publisher, logger *slog.Logger) *EmployeeService {
	return resource.NewService("employee", resource.Store[*hrDatamodel.Employee, storage.EmployeeFilter]{
		Get:    store.GetEmployee,
		List:   store.ListEmployees,
		Create: store.CreateEmployee,
		Update: store.UpdateEmployee,
		Delete: store.DeleteEmployee,
		Owner:  resource.DirectOwner[*hrDatamodel.Employee],
		ID:     func(e *hrDatamodel.Employee) int64 { return e.ID },
		Links: func(e *hrDatamodel.Employee) []resource.Link {
			return []resource.Link{resource.LinkTo("departmentId", e.DepartmentID, departments.GetDepartment)}
		},
	}, bus, logger)
}

func NewEmployeeHandler(base *transport.BaseHandler, service *EmployeeService) *EmployeeHandler {
	return resource.NewHandler(base, service, resource.Binding[*hrDatamodel.Employee, storage.EmployeeFilter, CreateEmployeeDTO]{
		Name:  "Employee",
		Build: (*CreateEmployeeDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.EmployeeFilter, *internal.AppError) {
			departmentID, appErr := h.QueryInt(r, "departmentId")
			return storage.EmployeeFilter{DepartmentID: departmentID}, appErr
		},
	})
}

func NewDepartmentService(store storage.DepartmentStore, employees storage.EmployeeStore, bus resource.Publisher, logger *slog.Logger) *DepartmentService {
	return resource.NewService("department", resource.Store[*hrDatamodel.Department, struct{}]{
		Get: store.GetDepartment,
		List: func(ctx context.Context, ownerID int64, _ struct{}) ([]*hrDatamodel.Department, error) {
			return store.ListDepartments(ctx, ownerID)
		},
		Create: store.CreateDepartment,
		Update: store.UpdateDepartment,
		Delete: store.DeleteDepartment,
		Owner:  resource.DirectOwner[*hrDatamodel.Department],
		ID:     func(d *hrDatamodel.Department) int64 { return d.ID },
		Links: func(d *hrDatamodel.Department) []resource.Link {
			return []resource.Link{resource.LinkTo("managerId", d.ManagerID, employees.GetEmployee)}
		},
	}, bus, logger)
}

func NewDepartmentHandler(base *transport.BaseHandler, service *DepartmentService) *DepartmentHandler {
	return resource.NewHandler(base, service, resource.Binding[*hrDatamodel.Department, struct{}, CreateDepartmentDTO]{
		Name:  "Department",
		Build: (*CreateDepartmentDTO).ToDataModel,
	})
}

func NewTeamService(store storage.TeamStore, departments storage.DepartmentStore, employees storage.EmployeeStore, bus resource.Publisher, logger *slog.Logger) *TeamService {
	return resource.NewService("team", resource.Store[*hrDatamodel.Team, storage.TeamFilter]{
		Get:    store.GetTeam,
		List:   store.ListTeams,
		Create: store.CreateTeam,
		Update: store.UpdateTeam,
		Delete: store.DeleteTeam,
		Owner:  resource.DirectOwner[*hrDatamodel.Team],
		ID:     func(t *hrDatamodel.Team) int64 { return t.ID },
		Links: func(t *hrDatamodel.Team) []resource.Link {
			return []resource.Link{
				resource.LinkTo("departmentId", t.DepartmentID, departments.GetDepartment),
				resource.LinkTo("leaderId", t.LeaderID, employees.GetEmployee),
			}
		},
	}, bus, logger)
}

func NewTeamHandler(base *transport.BaseHandler, service *TeamService) *TeamHandler {
	return resource.NewHandler(base, service, resource.Binding[*hrDatamodel.Team, storage.TeamFilter, CreateTeamDTO]{
		Name:  "Team",
		Build: (*CreateTeamDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.TeamFilter, *internal.AppError) {
			departmentID, appErr := h.QueryInt(r, "departmentId")
			return storage.TeamFilter{DepartmentID: departmentID}, appErr
		},
	})
}

// NewTeamMemberService resolves a member's owner through its team. A member
// whose team is gone belongs to nobody. The employee must share that owner.
func NewTeamMemberService(store storage.TeamMemberStore, teams storage.TeamStore, employees storage.EmployeeStore, bus resource.Publisher, logger *slog.Logger) *TeamMemberService {
	return resource.NewService("team_member", resource.Store[*hrDatamodel.TeamMember, TeamMemberFilter]{
		Get: store.GetTeamMember,
		List: func(ctx context.Context, _ int64, filter TeamMemberFilter) ([]*hrDatamodel.TeamMember, error) {
			return store.ListTeamMembers(ctx, filter.TeamID)
		},
		Create: store.CreateTeamMember,
		Update: store.UpdateTeamMember,
		Delete: store.DeleteTeamMember,
		Owner: func(ctx context.Context, m *hrDatamodel.TeamMember) (int64, error) {
			team, err := teams.GetTeam(ctx, m.TeamID)
			if err != nil {
				return 0, err
			}
			return team.UserID, nil
		},
		ID: func(m *hrDatamodel.TeamMember) int64 { return m.ID },
		Links: func(m *hrDatamodel.TeamMember) []resource.Link {
			return []resource.Link{resource.LinkTo("employeeId", &m.EmployeeID, employees.GetEmployee)}
		},
	}, bus, logger)
}

// NewTeamMemberHandler serves /team-members/{id}. Moving a member between
// teams is not allowed, so teamId is fixed after creation.
func NewTeamMemberHandler(base *transport.BaseHandler, service *TeamMemberService) *TeamMemberHandler {
	return resource.NewHandler(base, service, resource.Binding[*hrDatamodel.TeamMember, TeamMemberFilter, CreateTeamMemberDTO]{
		Name:      "Team member",
		Build:     (*CreateTeamMemberDTO).ToDataModel,
		Immutable: []string{"teamId"},
	})
}
