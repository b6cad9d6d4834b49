// Package storage defines the persistence contract shared by every backend.
package storage

import (
	"context"
	"errors"
	"time"

	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record conflicts with an existing one")
	ErrInvalidPatch = errors.New("invalid patch")
)

// DefaultTopLimit applies when a ranking is requested with a non-positive limit.
const DefaultTopLimit = 5

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetUserByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	CreateUser(ctx context.Context, u *userDatamodel.User) (*userDatamodel.User, error)
	UpdateUser(ctx context.Context, id int64, patch Patch) (*userDatamodel.User, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, s *userDatamodel.Session) (*userDatamodel.Session, error)
	GetSession(ctx context.Context, id string) (*userDatamodel.Session, error)
	DeleteSession(ctx context.Context, id string) (bool, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type CustomerStore interface {
	GetCustomer(ctx context.Context, id int64) (*crmDatamodel.Customer, error)
	ListCustomers(ctx context.Context, ownerID int64, filter CustomerFilter) ([]*crmDatamodel.Customer, error)
	CreateCustomer(ctx context.Context, c *crmDatamodel.Customer) (*crmDatamodel.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, patch Patch) (*crmDatamodel.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (bool, error)
}

type ComplaintStore interface {
	GetComplaint(ctx context.Context, id int64) (*crmDatamodel.Complaint, error)
	ListComplaints(ctx context.Context, ownerID int64, filter ComplaintFilter) ([]*crmDatamodel.Complaint, error)
	CreateComplaint(ctx context.Context, c *crmDatamodel.Complaint) (*crmDatamodel.Complaint, error)
	UpdateComplaint(ctx context.Context, id int64, patch Patch) (*crmDatamodel.Complaint, error)
	DeleteComplaint(ctx context.Context, id int64) (bool, error)
}

type EmployeeStore interface {
	GetEmployee(ctx context.Context, id int64) (*hrDatamodel.Employee, error)
	ListEmployees(ctx context.Context, ownerID int64, filter EmployeeFilter) ([]*hrDatamodel.Employee, error)
	CreateEmployee(ctx context.Context, e *hrDatamodel.Employee) (*hrDatamodel.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, patch Patch) (*hrDatamodel.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) (bool, error)
	TopPerformingEmployees(ctx context.Context, ownerID int64, limit int) ([]*hrDatamodel.Employee, error)
}

type DepartmentStore interface {
	GetDepartment(ctx context.Context, id int64) (*hrDatamodel.Department, error)
	ListDepartments(ctx context.Context, ownerID int64) ([]*hrDatamodel.Department, error)
	CreateDepartment(ctx context.Context, d *hrDatamodel.Department) (*hrDatamodel.Department, error)
	UpdateDepartment(ctx context.Context, id int64, patch Patch) (*hrDatamodel.Department, error)
	DeleteDepartment(ctx context.Context, id int64) (bool, error)
}

type TeamStore interface {
	GetTeam(ctx context.Context, id int64) (*hrDatamodel.Team, error)
	ListTeams(ctx context.Context, ownerID int64, filter TeamFilter) ([]*hrDatamodel.Team, error)
	CreateTeam(ctx context.Context, t *hrDatamodel.Team) (*hrDatamodel.Team, error)
	UpdateTeam(ctx context.Context, id int64, patch Patch) (*hrDatamodel.Team, error)
	DeleteTeam(ctx context.Context, id int64) (bool, error)
}

// TeamMemberStore lists by team only; ownership is resolved through the team.
type TeamMemberStore interface {
	GetTeamMember(ctx context.Context, id int64) (*hrDatamodel.TeamMember, error)
	ListTeamMembers(ctx context.Context, teamID int64) ([]*hrDatamodel.TeamMember, error)
	CreateTeamMember(ctx context.Context, m *hrDatamodel.TeamMember) (*hrDatamodel.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id int64, patch Patch) (*hrDatamodel.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id int64) (bool, error)
}

type ProductStore interface {
	GetProduct(ctx context.Context, id int64) (*marketplaceDatamodel.Product, error)
	ListProducts(ctx context.Context, ownerID int64) ([]*marketplaceDatamodel.Product, error)
	CreateProduct(ctx context.Context, p *marketplaceDatamodel.Product) (*marketplaceDatamodel.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch Patch) (*marketplaceDatamodel.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	TopProducts(ctx context.Context, ownerID int64, limit int) ([]*marketplaceDatamodel.Product, error)
}

type TaskStore interface {
	GetTask(ctx context.Context, id int64) (*operationsDatamodel.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter TaskFilter) ([]*operationsDatamodel.Task, error)
	CreateTask(ctx context.Context, t *operationsDatamodel.Task) (*operationsDatamodel.Task, error)
	UpdateTask(ctx context.Context, id int64, patch Patch) (*operationsDatamodel.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

type ProjectStore interface {
	GetProject(ctx context.Context, id int64) (*operationsDatamodel.Project, error)
	ListProjects(ctx context.Context, ownerID int64, filter ProjectFilter) ([]*operationsDatamodel.Project, error)
	CreateProject(ctx context.Context, p *operationsDatamodel.Project) (*operationsDatamodel.Project, error)
	UpdateProject(ctx context.Context, id int64, patch Patch) (*operationsDatamodel.Project, error)
	DeleteProject(ctx context.Context, id int64) (bool, error)
}

type MeetingStore interface {
	GetMeeting(ctx context.Context, id int64) (*operationsDatamodel.Meeting, error)
	ListMeetings(ctx context.Context, ownerID int64, filter MeetingFilter) ([]*operationsDatamodel.Meeting, error)
	CreateMeeting(ctx context.Context, m *operationsDatamodel.Meeting) (*operationsDatamodel.Meeting, error)
	UpdateMeeting(ctx context.Context, id int64, patch Patch) (*operationsDatamodel.Meeting, error)
	DeleteMeeting(ctx context.Context, id int64) (bool, error)
}

type FinancialRecordStore interface {
	GetFinancialRecord(ctx context.Context, id int64) (*accountingDatamodel.FinancialRecord, error)
	ListFinancialRecords(ctx context.Context, ownerID int64, filter FinancialRecordFilter) ([]*accountingDatamodel.FinancialRecord, error)
	CreateFinancialRecord(ctx context.Context, r *accountingDatamodel.FinancialRecord) (*accountingDatamodel.FinancialRecord, error)
	UpdateFinancialRecord(ctx context.Context, id int64, patch Patch) (*accountingDatamodel.FinancialRecord, error)
	DeleteFinancialRecord(ctx context.Context, id int64) (bool, error)
}

type BudgetStore interface {
	GetBudget(ctx context.Context, id int64) (*accountingDatamodel.Budget, error)
	ListBudgets(ctx context.Context, ownerID int64, filter BudgetFilter) ([]*accountingDatamodel.Budget, error)
	CreateBudget(ctx context.Context, b *accountingDatamodel.Budget) (*accountingDatamodel.Budget, error)
	UpdateBudget(ctx context.Context, id int64, patch Patch) (*accountingDatamodel.Budget, error)
	DeleteBudget(ctx context.Context, id int64) (bool, error)
}

// Storage is everything the route layer needs from a backend.
type Storage interface {
	UserStore
	SessionStore
	CustomerStore
	ComplaintStore
	EmployeeStore
	DepartmentStore
	TeamStore
	TeamMemberStore
	ProductStore
	TaskStore
	ProjectStore
	MeetingStore
	FinancialRecordStore
	BudgetStore

	PingContext(ctx context.Context) error
	Close() error
}
