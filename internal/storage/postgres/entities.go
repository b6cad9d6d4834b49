package postgres

import (
	"context"
	"time"

	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
)

// ----------------- USERS -----------------

func (s *Store) GetUser(ctx context.Context, id int64) (*userDatamodel.User, error) {
	return get[userDatamodel.User](ctx, s.db, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *userDatamodel.User) (*userDatamodel.User, error) {
	row := *u
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch storage.Patch) (*userDatamodel.User, error) {
	current, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := storage.Merge(current, patch)
	if err != nil {
		return nil, err
	}
	merged.Password = current.Password
	return save(ctx, s.db, merged)
}

// ----------------- SESSIONS -----------------

func (s *Store) CreateSession(ctx context.Context, sess *userDatamodel.Session) (*userDatamodel.Session, error) {
	row := *sess
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) GetSession(ctx context.Context, id string) (*userDatamodel.Session, error) {
	var sess userDatamodel.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sess).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&userDatamodel.Session{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&userDatamodel.Session{})
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

// ----------------- CUSTOMERS -----------------

func (s *Store) GetCustomer(ctx context.Context, id int64) (*crmDatamodel.Customer, error) {
	return get[crmDatamodel.Customer](ctx, s.db, id)
}

func (s *Store) ListCustomers(ctx context.Context, ownerID int64, filter storage.CustomerFilter) ([]*crmDatamodel.Customer, error) {
	q := owned(s.db, &crmDatamodel.Customer{}, ownerID)
	q = whereString(q, "type", filter.Type)
	return find[crmDatamodel.Customer](ctx, q)
}

func (s *Store) CreateCustomer(ctx context.Context, c *crmDatamodel.Customer) (*crmDatamodel.Customer, error) {
	row := *c
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, patch storage.Patch) (*crmDatamodel.Customer, error) {
	return update[crmDatamodel.Customer](ctx, s.db, id, patch)
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	return remove[crmDatamodel.Customer](ctx, s.db, id)
}

// ----------------- COMPLAINTS -----------------

func (s *Store) GetComplaint(ctx context.Context, id int64) (*crmDatamodel.Complaint, error) {
	return get[crmDatamodel.Complaint](ctx, s.db, id)
}

func (s *Store) ListComplaints(ctx context.Context, ownerID int64, filter storage.ComplaintFilter) ([]*crmDatamodel.Complaint, error) {
	q := owned(s.db, &crmDatamodel.Complaint{}, ownerID)
	q = whereInt(q, "customer_id", filter.CustomerID)
	return find[crmDatamodel.Complaint](ctx, q)
}

func (s *Store) CreateComplaint(ctx context.Context, c *crmDatamodel.Complaint) (*crmDatamodel.Complaint, error) {
	row := *c
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateComplaint(ctx context.Context, id int64, patch storage.Patch) (*crmDatamodel.Complaint, error) {
	return update[crmDatamodel.Complaint](ctx, s.db, id, patch)
}

func (s *Store) DeleteComplaint(ctx context.Context, id int64) (bool, error) {
	return remove[crmDatamodel.Complaint](ctx, s.db, id)
}

// ----------------- EMPLOYEES -----------------

func (s *Store) GetEmployee(ctx context.Context, id int64) (*hrDatamodel.Employee, error) {
	return get[hrDatamodel.Employee](ctx, s.db, id)
}

func (s *Store) ListEmployees(ctx context.Context, ownerID int64, filter storage.EmployeeFilter) ([]*hrDatamodel.Employee, error) {
	q := owned(s.db, &hrDatamodel.Employee{}, ownerID)
	q = whereInt(q, "department_id", filter.DepartmentID)
	return find[hrDatamodel.Employee](ctx, q)
}

func (s *Store) CreateEmployee(ctx context.Context, e *hrDatamodel.Employee) (*hrDatamodel.Employee, error) {
	row := *e
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateEmployee(ctx context.Context, id int64, patch storage.Patch) (*hrDatamodel.Employee, error) {
	return update[hrDatamodel.Employee](ctx, s.db, id, patch)
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	return remove[hrDatamodel.Employee](ctx, s.db, id)
}

func (s *Store) TopPerformingEmployees(ctx context.Context, ownerID int64, limit int) ([]*hrDatamodel.Employee, error) {
	return topN[hrDatamodel.Employee](ctx, s.db, ownerID, "performance", limit)
}

// ----------------- DEPARTMENTS -----------------

func (s *Store) GetDepartment(ctx context.Context, id int64) (*hrDatamodel.Department, error) {
	return get[hrDatamodel.Department](ctx, s.db, id)
}

func (s *Store) ListDepartments(ctx context.Context, ownerID int64) ([]*hrDatamodel.Department, error) {
	return find[hrDatamodel.Department](ctx, owned(s.db, &hrDatamodel.Department{}, ownerID))
}

func (s *Store) CreateDepartment(ctx context.Context, d *hrDatamodel.Department) (*hrDatamodel.Department, error) {
	row := *d
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateDepartment(ctx context.Context, id int64, patch storage.Patch) (*hrDatamodel.Department, error) {
	return update[hrDatamodel.Department](ctx, s.db, id, patch)
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) (bool, error) {
	return remove[hrDatamodel.Department](ctx, s.db, id)
}

// ----------------- TEAMS -----------------

func (s *Store) GetTeam(ctx context.Context, id int64) (*hrDatamodel.Team, error) {
	return get[hrDatamodel.Team](ctx, s.db, id)
}

func (s *Store) ListTeams(ctx context.Context, ownerID int64, filter storage.TeamFilter) ([]*hrDatamodel.Team, error) {
	q := owned(s.db, &hrDatamodel.Team{}, ownerID)
	q = whereInt(q, "department_id", filter.DepartmentID)
	return find[hrDatamodel.Team](ctx, q)
}

func (s *Store) CreateTeam(ctx context.Context, t *hrDatamodel.Team) (*hrDatamodel.Team, error) {
	row := *t
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateTeam(ctx context.Context, id int64, patch storage.Patch) (*hrDatamodel.Team, error) {
	return update[hrDatamodel.Team](ctx, s.db, id, patch)
}

func (s *Store) DeleteTeam(ctx context.Context, id int64) (bool, error) {
	return remove[hrDatamodel.Team](ctx, s.db, id)
}

// ----------------- TEAM MEMBERS -----------------

func (s *Store) GetTeamMember(ctx context.Context, id int64) (*hrDatamodel.TeamMember, error) {
	return get[hrDatamodel.TeamMember](ctx, s.db, id)
}

func (s *Store) ListTeamMembers(ctx context.Context, teamID int64) ([]*hrDatamodel.TeamMember, error) {
	q := s.db.Model(&hrDatamodel.TeamMember{}).Where("team_id = ?", teamID)
	return find[hrDatamodel.TeamMember](ctx, q)
}

func (s *Store) CreateTeamMember(ctx context.Context, m *hrDatamodel.TeamMember) (*hrDatamodel.TeamMember, error) {
	row := *m
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateTeamMember(ctx context.Context, id int64, patch storage.Patch) (*hrDatamodel.TeamMember, error) {
	return update[hrDatamodel.TeamMember](ctx, s.db, id, patch)
}

func (s *Store) DeleteTeamMember(ctx context.Context, id int64) (bool, error) {
	return remove[hrDatamodel.TeamMember](ctx, s.db, id)
}

// ----------------- PRODUCTS -----------------

func (s *Store) GetProduct(ctx context.Context, id int64) (*marketplaceDatamodel.Product, error) {
	return get[marketplaceDatamodel.Product](ctx, s.db, id)
}

func (s *Store) ListProducts(ctx context.Context, ownerID int64) ([]*marketplaceDatamodel.Product, error) {
	return find[marketplaceDatamodel.Product](ctx, owned(s.db, &marketplaceDatamodel.Product{}, ownerID))
}

func (s *Store) CreateProduct(ctx context.Context, p *marketplaceDatamodel.Product) (*marketplaceDatamodel.Product, error) {
	row := *p
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch storage.Patch) (*marketplaceDatamodel.Product, error) {
	return update[marketplaceDatamodel.Product](ctx, s.db, id, patch)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return remove[marketplaceDatamodel.Product](ctx, s.db, id)
}

func (s *Store) TopProducts(ctx context.Context, ownerID int64, limit int) ([]*marketplaceDatamodel.Product, error) {
	return topN[marketplaceDatamodel.Product](ctx, s.db, ownerID, "sales", limit)
}

// ----------------- TASKS -----------------

func (s *Store) GetTask(ctx context.Context, id int64) (*operationsDatamodel.Task, error) {
	return get[operationsDatamodel.Task](ctx, s.db, id)
}

func (s *Store) ListTasks(ctx context.Context, ownerID int64, filter storage.TaskFilter) ([]*operationsDatamodel.Task, error) {
	q := owned(s.db, &operationsDatamodel.Task{}, ownerID)
	q = whereInt(q, "assigned_to", filter.AssignedTo)
	q = whereInt(q, "team_id", filter.TeamID)
	q = whereInt(q, "project_id", filter.ProjectID)
	return find[operationsDatamodel.Task](ctx, q)
}

func (s *Store) CreateTask(ctx context.Context, t *operationsDatamodel.Task) (*operationsDatamodel.Task, error) {
	row := *t
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateTask(ctx context.Context, id int64, patch storage.Patch) (*operationsDatamodel.Task, error) {
	return update[operationsDatamodel.Task](ctx, s.db, id, patch)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) (bool, error) {
	return remove[operationsDatamodel.Task](ctx, s.db, id)
}

// ----------------- PROJECTS -----------------

func (s *Store) GetProject(ctx context.Context, id int64) (*operationsDatamodel.Project, error) {
	return get[operationsDatamodel.Project](ctx, s.db, id)
}

func (s *Store) ListProjects(ctx context.Context, ownerID int64, filter storage.ProjectFilter) ([]*operationsDatamodel.Project, error) {
	q := owned(s.db, &operationsDatamodel.Project{}, ownerID)
	q = whereInt(q, "team_id", filter.TeamID)
	return find[operationsDatamodel.Project](ctx, q)
}

func (s *Store) CreateProject(ctx context.Context, p *operationsDatamodel.Project) (*operationsDatamodel.Project, error) {
	row := *p
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateProject(ctx context.Context, id int64, patch storage.Patch) (*operationsDatamodel.Project, error) {
	return update[operationsDatamodel.Project](ctx, s.db, id, patch)
}

func (s *Store) DeleteProject(ctx context.Context, id int64) (bool, error) {
	return remove[operationsDatamodel.Project](ctx, s.db, id)
}

// ----------------- MEETINGS -----------------

func (s *Store) GetMeeting(ctx context.Context, id int64) (*operationsDatamodel.Meeting, error) {
	return get[operationsDatamodel.Meeting](ctx, s.db, id)
}

func (s *Store) ListMeetings(ctx context.Context, ownerID int64, filter storage.MeetingFilter) ([]*operationsDatamodel.Meeting, error) {
	q := owned(s.db, &operationsDatamodel.Meeting{}, ownerID)
	q = whereInt(q, "team_id", filter.TeamID)
	q = whereInt(q, "project_id", filter.ProjectID)
	return find[operationsDatamodel.Meeting](ctx, q)
}

func (s *Store) CreateMeeting(ctx context.Context, m *operationsDatamodel.Meeting) (*operationsDatamodel.Meeting, error) {
	row := *m
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateMeeting(ctx context.Context, id int64, patch storage.Patch) (*operationsDatamodel.Meeting, error) {
	return update[operationsDatamodel.Meeting](ctx, s.db, id, patch)
}

func (s *Store) DeleteMeeting(ctx context.Context, id int64) (bool, error) {
	return remove[operationsDatamodel.Meeting](ctx, s.db, id)
}

// ----------------- FINANCIAL RECORDS -----------------

func (s *Store) GetFinancialRecord(ctx context.Context, id int64) (*accountingDatamodel.FinancialRecord, error) {
	return get[accountingDatamodel.FinancialRecord](ctx, s.db, id)
}

func (s *Store) ListFinancialRecords(ctx context.Context, ownerID int64, filter storage.FinancialRecordFilter) ([]*accountingDatamodel.FinancialRecord, error) {
	q := owned(s.db, &accountingDatamodel.FinancialRecord{}, ownerID)
	q = whereString(q, "type", filter.Type)
	return find[accountingDatamodel.FinancialRecord](ctx, q)
}

func (s *Store) CreateFinancialRecord(ctx context.Context, r *accountingDatamodel.FinancialRecord) (*accountingDatamodel.FinancialRecord, error) {
	row := *r
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateFinancialRecord(ctx context.Context, id int64, patch storage.Patch) (*accountingDatamodel.FinancialRecord, error) {
	return update[accountingDatamodel.FinancialRecord](ctx, s.db, id, patch)
}

func (s *Store) DeleteFinancialRecord(ctx context.Context, id int64) (bool, error) {
	return remove[accountingDatamodel.FinancialRecord](ctx, s.db, id)
}

// ----------------- BUDGETS -----------------

func (s *Store) GetBudget(ctx context.Context, id int64) (*accountingDatamodel.Budget, error) {
	return get[accountingDatamodel.Budget](ctx, s.db, id)
}

func (s *Store) ListBudgets(ctx context.Context, ownerID int64, filter storage.BudgetFilter) ([]*accountingDatamodel.Budget, error) {
	q := owned(s.db, &accountingDatamodel.Budget{}, ownerID)
	q = whereInt(q, "department_id", filter.DepartmentID)
	q = whereInt(q, "project_id", filter.ProjectID)
	return find[accountingDatamodel.Budget](ctx, q)
}

func (s *Store) CreateBudget(ctx context.Context, b *accountingDatamodel.Budget) (*accountingDatamodel.Budget, error) {
	row := *b
	row.ID = 0
	row.CreatedAt = s.now()
	return create(ctx, s.db, &row)
}

func (s *Store) UpdateBudget(ctx context.Context, id int64, patch storage.Patch) (*accountingDatamodel.Budget, error) {
	return update[accountingDatamodel.Budget](ctx, s.db, id, patch)
}

func (s *Store) DeleteBudget(ctx context.Context, id int64) (bool, error) {
	return remove[accountingDatamodel.Budget](ctx, s.db, id)
}
