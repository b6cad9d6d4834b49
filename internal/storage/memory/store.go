// Package memory is the volatile storage backend. Data is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	users            *table[userDatamodel.User]
	sessions         map[string]userDatamodel.Session
	customers        *table[crmDatamodel.Customer]
	complaints       *table[crmDatamodel.Complaint]
	employees        *table[hrDatamodel.Employee]
	departments      *table[hrDatamodel.Department]
	teams            *table[hrDatamodel.Team]
	teamMembers      *table[hrDatamodel.TeamMember]
	products         *table[marketplaceDatamodel.Product]
	tasks            *table[operationsDatamodel.Task]
	projects         *table[operationsDatamodel.Project]
	meetings         *table[operationsDatamodel.Meeting]
	financialRecords *table[accountingDatamodel.FinancialRecord]
	budgets          *table[accountingDatamodel.Budget]

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:            newTable[userDatamodel.User](),
		sessions:         make(map[string]userDatamodel.Session),
		customers:        newTable[crmDatamodel.Customer](),
		complaints:       newTable[crmDatamodel.Complaint](),
		employees:        newTable[hrDatamodel.Employee](),
		departments:      newTable[hrDatamodel.Department](),
		teams:            newTable[hrDatamodel.Team](),
		teamMembers:      newTable[hrDatamodel.TeamMember](),
		products:         newTable[marketplaceDatamodel.Product](),
		tasks:            newTable[operationsDatamodel.Task](),
		projects:         newTable[operationsDatamodel.Project](),
		meetings:         newTable[operationsDatamodel.Meeting](),
		financialRecords: newTable[accountingDatamodel.FinancialRecord](),
		budgets:          newTable[accountingDatamodel.Budget](),
		now:              func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *Store) PingContext(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

// ----------------- USERS -----------------

func (s *Store) GetUser(_ context.Context, id int64) (*userDatamodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id)
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*userDatamodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := s.users.list(func(u *userDatamodel.User) bool { return u.Username == username })
	if len(found) == 0 {
		return nil, storage.ErrNotFound
	}
	return found[0], nil
}

func (s *Store) CreateUser(_ context.Context, u *userDatamodel.User) (*userDatamodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(u.Username) {
		return nil, storage.ErrConflict
	}

	row := *u
	row.ID = s.users.nextID()
	row.CreatedAt = s.now()
	return s.users.put(row.ID, row), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch storage.Patch) (*userDatamodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.users.get(id)
	if err != nil {
		return nil, err
	}
	merged, err := storage.Merge(current, patch)
	if err != nil {
		return nil, err
	}
	if merged.Username != current.Username && s.usernameTaken(merged.Username) {
		return nil, storage.ErrConflict
	}
	merged.Password = current.Password
	return s.users.put(id, *merged), nil
}

func (s *Store) usernameTaken(username string) bool {
	for _, u := range s.users.rows {
		if u.Username == username {
			return true
		}
	}
	return false
}

// ----------------- SESSIONS -----------------

func (s *Store) CreateSession(_ context.Context, sess *userDatamodel.Session) (*userDatamodel.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return nil, storage.ErrConflict
	}
	row := *sess
	row.CreatedAt = s.now()
	s.sessions[row.ID] = row
	return &row, nil
}

func (s *Store) GetSession(_ context.Context, id string) (*userDatamodel.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.sessions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &row, nil
}

func (s *Store) DeleteSession(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false, nil
	}
	delete(s.sessions, id)
	return true, nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// ----------------- CUSTOMERS -----------------

func (s *Store) GetCustomer(_ context.Context, id int64) (*crmDatamodel.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.get(id)
}

func (s *Store) ListCustomers(_ context.Context, ownerID int64, filter storage.CustomerFilter) ([]*crmDatamodel.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.list(func(c *crmDatamodel.Customer) bool {
		return c.UserID == ownerID && storage.MatchString(filter.Type, c.Type)
	}), nil
}

func (s *Store) CreateCustomer(_ context.Context, c *crmDatamodel.Customer) (*crmDatamodel.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *c
	row.ID = s.customers.nextID()
	row.CreatedAt = s.now()
	return s.customers.put(row.ID, row), nil
}

func (s *Store) UpdateCustomer(_ context.Context, id int64, patch storage.Patch) (*crmDatamodel.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.update(id, patch)
}

func (s *Store) DeleteCustomer(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.delete(id), nil
}

// ----------------- COMPLAINTS -----------------

func (s *Store) GetComplaint(_ context.Context, id int64) (*crmDatamodel.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.complaints.get(id)
}

func (s *Store) ListComplaints(_ context.Context, ownerID int64, filter storage.ComplaintFilter) ([]*crmDatamodel.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.complaints.list(func(c *crmDatamodel.Complaint) bool {
		return c.UserID == ownerID && storage.MatchInt(filter.CustomerID, c.CustomerID)
	}), nil
}

func (s *Store) CreateComplaint(_ context.Context, c *crmDatamodel.Complaint) (*crmDatamodel.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *c
	row.ID = s.complaints.nextID()
	row.CreatedAt = s.now()
	return s.complaints.put(row.ID, row), nil
}

func (s *Store) UpdateComplaint(_ context.Context, id int64, patch storage.Patch) (*crmDatamodel.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complaints.update(id, patch)
}

func (s *Store) DeleteComplaint(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complaints.delete(id), nil
}

// ----------------- EMPLOYEES -----------------

func (s *Store) GetEmployee(_ context.Context, id int64) (*hrDatamodel.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employees.get(id)
}

func (s *Store) ListEmployees(_ context.Context, ownerID int64, filter storage.EmployeeFilter) ([]*hrDatamodel.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employees.list(func(e *hrDatamodel.Employee) bool {
		return e.UserID == ownerID && storage.MatchInt(filter.DepartmentID, e.DepartmentID)
	}), nil
}

func (s *Store) CreateEmployee(_ context.Context, e *hrDatamodel.Employee) (*hrDatamodel.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *e
	row.ID = s.employees.nextID()
	row.CreatedAt = s.now()
	return s.employees.put(row.ID, row), nil
}

func (s *Store) UpdateEmployee(_ context.Context, id int64, patch storage.Patch) (*hrDatamodel.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees.update(id, patch)
}

func (s *Store) DeleteEmployee(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees.delete(id), nil
}

func (s *Store) TopPerformingEmployees(_ context.Context, ownerID int64, limit int) ([]*hrDatamodel.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := s.employees.list(func(e *hrDatamodel.Employee) bool { return e.UserID == ownerID })
	return storage.Rank(owned,
		func(e *hrDatamodel.Employee) int64 { return storage.Value(e.Performance) },
		func(e *hrDatamodel.Employee) int64 { return e.ID },
		limit), nil
}

// ----------------- DEPARTMENTS -----------------

func (s *Store) GetDepartment(_ context.Context, id int64) (*hrDatamodel.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.departments.get(id)
}

func (s *Store) ListDepartments(_ context.Context, ownerID int64) ([]*hrDatamodel.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.departments.list(func(d *hrDatamodel.Department) bool { return d.UserID == ownerID }), nil
}

func (s *Store) CreateDepartment(_ context.Context, d *hrDatamodel.Department) (*hrDatamodel.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *d
	row.ID = s.departments.nextID()
	row.CreatedAt = s.now()
	return s.departments.put(row.ID, row), nil
}

func (s *Store) UpdateDepartment(_ context.Context, id int64, patch storage.Patch) (*hrDatamodel.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.departments.update(id, patch)
}

func (s *Store) DeleteDepartment(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.departments.delete(id), nil
}

// ----------------- TEAMS -----------------

func (s *Store) GetTeam(_ context.Context, id int64) (*hrDatamodel.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams.get(id)
}

func (s *Store) ListTeams(_ context.Context, ownerID int64, filter storage.TeamFilter) ([]*hrDatamodel.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams.list(func(t *hrDatamodel.Team) bool {
		return t.UserID == ownerID && storage.MatchInt(filter.DepartmentID, t.DepartmentID)
	}), nil
}

func (s *Store) CreateTeam(_ context.Context, t *hrDatamodel.Team) (*hrDatamodel.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *t
	row.ID = s.teams.nextID()
	row.CreatedAt = s.now()
	return s.teams.put(row.ID, row), nil
}

func (s *Store) UpdateTeam(_ context.Context, id int64, patch storage.Patch) (*hrDatamodel.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teams.update(id, patch)
}

func (s *Store) DeleteTeam(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teams.delete(id), nil
}

// ----------------- TEAM MEMBERS -----------------

func (s *Store) GetTeamMember(_ context.Context, id int64) (*hrDatamodel.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teamMembers.get(id)
}

func (s *Store) ListTeamMembers(_ context.Context, teamID int64) ([]*hrDatamodel.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teamMembers.list(func(m *hrDatamodel.TeamMember) bool { return m.TeamID == teamID }), nil
}

func (s *Store) CreateTeamMember(_ context.Context, m *hrDatamodel.TeamMember) (*hrDatamodel.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *m
	row.ID = s.teamMembers.nextID()
	row.CreatedAt = s.now()
	return s.teamMembers.put(row.ID, row), nil
}

func (s *Store) UpdateTeamMember(_ context.Context, id int64, patch storage.Patch) (*hrDatamodel.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teamMembers.update(id, patch)
}

func (s *Store) DeleteTeamMember(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teamMembers.delete(id), nil
}

// ----------------- PRODUCTS -----------------

func (s *Store) GetProduct(_ context.Context, id int64) (*marketplaceDatamodel.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.get(id)
}

func (s *Store) ListProducts(_ context.Context, ownerID int64) ([]*marketplaceDatamodel.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.list(func(p *marketplaceDatamodel.Product) bool { return p.UserID == ownerID }), nil
}

func (s *Store) CreateProduct(_ context.Context, p *marketplaceDatamodel.Product) (*marketplaceDatamodel.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *p
	row.ID = s.products.nextID()
	row.CreatedAt = s.now()
	return s.products.put(row.ID, row), nil
}

func (s *Store) UpdateProduct(_ context.Context, id int64, patch storage.Patch) (*marketplaceDatamodel.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.update(id, patch)
}

func (s *Store) DeleteProduct(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.delete(id), nil
}

func (s *Store) TopProducts(_ context.Context, ownerID int64, limit int) ([]*marketplaceDatamodel.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := s.products.list(func(p *marketplaceDatamodel.Product) bool { return p.UserID == ownerID })
	return storage.Rank(owned,
		func(p *marketplaceDatamodel.Product) int64 { return storage.Value(p.Sales) },
		func(p *marketplaceDatamodel.Product) int64 { return p.ID },
		limit), nil
}

// ----------------- TASKS -----------------

func (s *Store) GetTask(_ context.Context, id int64) (*operationsDatamodel.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.get(id)
}

func (s *Store) ListTasks(_ context.Context, ownerID int64, filter storage.TaskFilter) ([]*operationsDatamodel.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.list(func(t *operationsDatamodel.Task) bool {
		return t.UserID == ownerID &&
			storage.MatchInt(filter.AssignedTo, t.AssignedTo) &&
			storage.MatchInt(filter.TeamID, t.TeamID) &&
			storage.MatchInt(filter.ProjectID, t.ProjectID)
	}), nil
}

func (s *Store) CreateTask(_ context.Context, t *operationsDatamodel.Task) (*operationsDatamodel.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *t
	row.ID = s.tasks.nextID()
	row.CreatedAt = s.now()
	return s.tasks.put(row.ID, row), nil
}

func (s *Store) UpdateTask(_ context.Context, id int64, patch storage.Patch) (*operationsDatamodel.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.update(id, patch)
}

func (s *Store) DeleteTask(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.delete(id), nil
}

// ----------------- PROJECTS -----------------

func (s *Store) GetProject(_ context.Context, id int64) (*operationsDatamodel.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.get(id)
}

func (s *Store) ListProjects(_ context.Context, ownerID int64, filter storage.ProjectFilter) ([]*operationsDatamodel.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.list(func(p *operationsDatamodel.Project) bool {
		return p.UserID == ownerID && storage.MatchInt(filter.TeamID, p.TeamID)
	}), nil
}

func (s *Store) CreateProject(_ context.Context, p *operationsDatamodel.Project) (*operationsDatamodel.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *p
	row.ID = s.projects.nextID()
	row.CreatedAt = s.now()
	return s.projects.put(row.ID, row), nil
}

func (s *Store) UpdateProject(_ context.Context, id int64, patch storage.Patch) (*operationsDatamodel.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects.update(id, patch)
}

func (s *Store) DeleteProject(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects.delete(id), nil
}

// ----------------- MEETINGS -----------------

func (s *Store) GetMeeting(_ context.Context, id int64) (*operationsDatamodel.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meetings.get(id)
}

func (s *Store) ListMeetings(_ context.Context, ownerID int64, filter storage.MeetingFilter) ([]*operationsDatamodel.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meetings.list(func(m *operationsDatamodel.Meeting) bool {
		return m.UserID == ownerID &&
			storage.MatchInt(filter.TeamID, m.TeamID) &&
			storage.MatchInt(filter.ProjectID, m.ProjectID)
	}), nil
}

func (s *Store) CreateMeeting(_ context.Context, m *operationsDatamodel.Meeting) (*operationsDatamodel.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *m
	row.ID = s.meetings.nextID()
	row.CreatedAt = s.now()
	return s.meetings.put(row.ID, row), nil
}

func (s *Store) UpdateMeeting(_ context.Context, id int64, patch storage.Patch) (*operationsDatamodel.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meetings.update(id, patch)
}

func (s *Store) DeleteMeeting(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meetings.delete(id), nil
}

// ----------------- FINANCIAL RECORDS -----------------

func (s *Store) GetFinancialRecord(_ context.Context, id int64) (*accountingDatamodel.FinancialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.financialRecords.get(id)
}

func (s *Store) ListFinancialRecords(_ context.Context, ownerID int64, filter storage.FinancialRecordFilter) ([]*accountingDatamodel.FinancialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.financialRecords.list(func(r *accountingDatamodel.FinancialRecord) bool {
		return r.UserID == ownerID && (filter.Type == nil || r.Type == *filter.Type)
	}), nil
}

func (s *Store) CreateFinancialRecord(_ context.Context, r *accountingDatamodel.FinancialRecord) (*accountingDatamodel.FinancialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *r
	row.ID = s.financialRecords.nextID()
	row.CreatedAt = s.now()
	return s.financialRecords.put(row.ID, row), nil
}

func (s *Store) UpdateFinancialRecord(_ context.Context, id int64, patch storage.Patch) (*accountingDatamodel.FinancialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.financialRecords.update(id, patch)
}

func (s *Store) DeleteFinancialRecord(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.financialRecords.delete(id), nil
}

// ----------------- BUDGETS -----------------

func (s *Store) GetBudget(_ context.Context, id int64) (*accountingDatamodel.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets.get(id)
}

func (s *Store) ListBudgets(_ context.Context, ownerID int64, filter storage.BudgetFilter) ([]*accountingDatamodel.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets.list(func(b *accountingDatamodel.Budget) bool {
		return b.UserID == ownerID &&
			storage.MatchInt(filter.DepartmentID, b.DepartmentID) &&
			storage.MatchInt(filter.ProjectID, b.ProjectID)
	}), nil
}

func (s *Store) CreateBudget(_ context.Context, b *accountingDatamodel.Budget) (*accountingDatamodel.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *b
	row.ID = s.budgets.nextID()
	row.CreatedAt = s.now()
	return s.budgets.put(row.ID, row), nil
}

func (s *Store) UpdateBudget(_ context.Context, id int64, patch storage.Patch) (*accountingDatamodel.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.update(id, patch)
}

func (s *Store) DeleteBudget(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.delete(id), nil
}
