// Package storagetest holds the behaviour every storage.Storage backend must
// share. Backends call DescribeStorage from their own ginkgo suites.
package storagetest

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func raw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	Expect(err).NotTo(HaveOccurred())
	return b
}

// DescribeStorage registers the shared contract. newStore is called before
// every spec and must return an empty store.
func DescribeStorage(newStore func() storage.Storage) {
	var (
		ctx    context.Context
		store  storage.Storage
		owner  *userDatamodel.User
		other  *userDatamodel.User
		newErr error
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newStore()

		owner, newErr = store.CreateUser(ctx, &userDatamodel.User{
			Username:    "acme",
			Password:    "hash-1",
			CompanyName: "Acme Inc",
		})
		Expect(newErr).NotTo(HaveOccurred())

		other, newErr = store.CreateUser(ctx, &userDatamodel.User{
			Username:    "globex",
			Password:    "hash-2",
			CompanyName: "Globex",
		})
		Expect(newErr).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	It("answers pings", func() {
		Expect(store.PingContext(ctx)).To(Succeed())
	})

	Describe("users", func() {
		It("assigns increasing ids starting at one", func() {
			Expect(owner.ID).To(Equal(int64(1)))
			Expect(other.ID).To(Equal(int64(2)))
			Expect(owner.CreatedAt).NotTo(BeZero())
		})

		It("finds a user by username", func() {
			found, err := store.GetUserByUsername(ctx, "globex")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(other.ID))
			Expect(found.Password).To(Equal("hash-2"))
		})

		It("reports a missing username as not found", func() {
			_, err := store.GetUserByUsername(ctx, "nobody")
			Expect(err).To(MatchError(storage.ErrNotFound))
		})

		It("rejects a duplicate username", func() {
			_, err := store.CreateUser(ctx, &userDatamodel.User{
				Username:    "acme",
				Password:    "hash-3",
				CompanyName: "Impostor",
			})
			Expect(err).To(MatchError(storage.ErrConflict))
		})

		It("updates profile fields and keeps the password hash", func() {
			updated, err := store.UpdateUser(ctx, owner.ID, storage.Patch{
				"companyName": raw("Acme Holdings"),
				"webLink":     raw("acme.example"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.CompanyName).To(Equal("Acme Holdings"))
			Expect(updated.WebLink).To(Equal(ptr("acme.example")))
			Expect(updated.Username).To(Equal("acme"))

			reloaded, err := store.GetUser(ctx, owner.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Password).To(Equal("hash-1"))
			Expect(reloaded.CompanyName).To(Equal("Acme Holdings"))
		})

		It("reports updating a missing user as not found", func() {
			_, err := store.UpdateUser(ctx, 999, storage.Patch{"companyName": raw("x")})
			Expect(err).To(MatchError(storage.ErrNotFound))
		})
	})

	Describe("sessions", func() {
		It("creates, reads and deletes a session", func() {
			expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
			_, err := store.CreateSession(ctx, &userDatamodel.Session{
				ID:        "7c1a3a6e-2f55-4c36-9a59-0d61b1f2b9a1",
				UserID:    owner.ID,
				ExpiresAt: expires,
			})
			Expect(err).NotTo(HaveOccurred())

			got, err := store.GetSession(ctx, "7c1a3a6e-2f55-4c36-9a59-0d61b1f2b9a1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserID).To(Equal(owner.ID))
			Expect(got.ExpiresAt).To(BeTemporally("~", expires, time.Second))

			deleted, err := store.DeleteSession(ctx, got.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			_, err = store.GetSession(ctx, got.ID)
			Expect(err).To(MatchError(storage.ErrNotFound))

			deleted, err = store.DeleteSession(ctx, got.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})

		It("sweeps only expired sessions", func() {
			now := time.Now().UTC()
			_, err := store.CreateSession(ctx, &userDatamodel.Session{
				ID: "0b0f7a8e-0000-4000-8000-000000000001", UserID: owner.ID, ExpiresAt: now.Add(-time.Minute),
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateSession(ctx, &userDatamodel.Session{
				ID: "0b0f7a8e-0000-4000-8000-000000000002", UserID: owner.ID, ExpiresAt: now.Add(time.Hour),
			})
			Expect(err).NotTo(HaveOccurred())

			removed, err := store.DeleteExpiredSessions(ctx, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(int64(1)))

			_, err = store.GetSession(ctx, "0b0f7a8e-0000-4000-8000-000000000002")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("customers", func() {
		var acmeRetail, acmeWholesale, globexRetail *crmDatamodel.Customer

		BeforeEach(func() {
			var err error
			acmeRetail, err = store.CreateCustomer(ctx, &crmDatamodel.Customer{
				UserID: owner.ID, Name: "Jane", Email: ptr("jane@example.com"), Type: ptr("retail"),
			})
			Expect(err).NotTo(HaveOccurred())
			acmeWholesale, err = store.CreateCustomer(ctx, &crmDatamodel.Customer{
				UserID: owner.ID, Name: "Bulk Co", Type: ptr("wholesale"),
			})
			Expect(err).NotTo(HaveOccurred())
			globexRetail, err = store.CreateCustomer(ctx, &crmDatamodel.Customer{
				UserID: other.ID, Name: "Hank", Type: ptr("retail"),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("round-trips a created record", func() {
			Expect(acmeRetail.ID).To(Equal(int64(1)))
			Expect(acmeRetail.CreatedAt).NotTo(BeZero())

			got, err := store.GetCustomer(ctx, acmeRetail.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(acmeRetail.ID))
			Expect(got.UserID).To(Equal(owner.ID))
			Expect(got.Name).To(Equal("Jane"))
			Expect(got.Email).To(Equal(ptr("jane@example.com")))
			Expect(got.Phone).To(BeNil())
			Expect(got.Type).To(Equal(ptr("retail")))
			Expect(got.CreatedAt).To(BeTemporally("~", acmeRetail.CreatedAt, time.Millisecond))
		})

		It("lists only the owner's records in id order", func() {
			list, err := store.ListCustomers(ctx, owner.ID, storage.CustomerFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(acmeRetail.ID))
			Expect(list[1].ID).To(Equal(acmeWholesale.ID))
		})

		It("applies the type filter", func() {
			list, err := store.ListCustomers(ctx, owner.ID, storage.CustomerFilter{Type: ptr("wholesale")})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Name).To(Equal("Bulk Co"))
		})

		It("returns an empty list for an owner with no records", func() {
			list, err := store.ListCustomers(ctx, 999, storage.CustomerFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeNil())
			Expect(list).To(BeEmpty())
		})

		It("merges a partial update and leaves other fields alone", func() {
			updated, err := store.UpdateCustomer(ctx, acmeRetail.ID, storage.Patch{
				"phone": raw("555-0100"),
				"id":    raw(42),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(acmeRetail.ID))
			Expect(updated.Phone).To(Equal(ptr("555-0100")))
			Expect(updated.Name).To(Equal("Jane"))
			Expect(updated.Email).To(Equal(ptr("jane@example.com")))

			got, err := store.GetCustomer(ctx, acmeRetail.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Phone).To(Equal(ptr("555-0100")))
			Expect(got.Name).To(Equal("Jane"))
		})

		It("clears an optional field set to null", func() {
			updated, err := store.UpdateCustomer(ctx, acmeRetail.ID, storage.Patch{"email": json.RawMessage("null")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Email).To(BeNil())
		})

		It("rejects a value of the wrong type", func() {
			_, err := store.UpdateCustomer(ctx, acmeRetail.ID, storage.Patch{"name": raw(12)})
			Expect(err).To(MatchError(storage.ErrInvalidPatch))

			got, err := store.GetCustomer(ctx, acmeRetail.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Jane"))
		})

		It("reports updating a missing record as not found", func() {
			_, err := store.UpdateCustomer(ctx, 999, storage.Patch{"name": raw("x")})
			Expect(err).To(MatchError(storage.ErrNotFound))
		})

		It("deletes a record exactly once", func() {
			deleted, err := store.DeleteCustomer(ctx, globexRetail.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			_, err = store.GetCustomer(ctx, globexRetail.ID)
			Expect(err).To(MatchError(storage.ErrNotFound))

			deleted, err = store.DeleteCustomer(ctx, globexRetail.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})

		It("never reuses a deleted id", func() {
			_, err := store.DeleteCustomer(ctx, globexRetail.ID)
			Expect(err).NotTo(HaveOccurred())

			next, err := store.CreateCustomer(ctx, &crmDatamodel.Customer{UserID: owner.ID, Name: "Later"})
			Expect(err).NotTo(HaveOccurred())
			Expect(next.ID).To(BeNumerically(">", globexRetail.ID))
		})
	})

	Describe("complaints", func() {
		It("filters by customer", func() {
			_, err := store.CreateComplaint(ctx, &crmDatamodel.Complaint{
				UserID: owner.ID, CustomerID: ptr(int64(1)), Subject: "Late", Status: "open", Priority: "high",
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateComplaint(ctx, &crmDatamodel.Complaint{
				UserID: owner.ID, CustomerID: ptr(int64(2)), Subject: "Broken", Status: "open", Priority: "medium",
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateComplaint(ctx, &crmDatamodel.Complaint{
				UserID: owner.ID, Subject: "General", Status: "open", Priority: "low",
			})
			Expect(err).NotTo(HaveOccurred())

			list, err := store.ListComplaints(ctx, owner.ID, storage.ComplaintFilter{CustomerID: ptr(int64(2))})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Subject).To(Equal("Broken"))

			all, err := store.ListComplaints(ctx, owner.ID, storage.ComplaintFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(3))
		})
	})

	Describe("employees", func() {
		It("ranks top performers with missing scores as zero", func() {
			for _, e := range []*hrDatamodel.Employee{
				{UserID: owner.ID, Name: "no score", Status: "active"},
				{UserID: owner.ID, Name: "mid", Status: "active", Performance: ptr(int64(70))},
				{UserID: owner.ID, Name: "best", Status: "active", Performance: ptr(int64(95))},
				{UserID: owner.ID, Name: "also mid", Status: "active", Performance: ptr(int64(70))},
				{UserID: other.ID, Name: "foreign", Status: "active", Performance: ptr(int64(100))},
			} {
				_, err := store.CreateEmployee(ctx, e)
				Expect(err).NotTo(HaveOccurred())
			}

			top, err := store.TopPerformingEmployees(ctx, owner.ID, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(top).To(HaveLen(3))
			Expect(top[0].Name).To(Equal("best"))
			Expect(top[1].Name).To(Equal("mid"))
			Expect(top[2].Name).To(Equal("also mid"))

			all, err := store.TopPerformingEmployees(ctx, owner.ID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(4))
			Expect(all[3].Name).To(Equal("no score"))
		})

		It("filters by department", func() {
			_, err := store.CreateEmployee(ctx, &hrDatamodel.Employee{UserID: owner.ID, Name: "a", Status: "active", DepartmentID: ptr(int64(1))})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateEmployee(ctx, &hrDatamodel.Employee{UserID: owner.ID, Name: "b", Status: "active", DepartmentID: ptr(int64(2))})
			Expect(err).NotTo(HaveOccurred())

			list, err := store.ListEmployees(ctx, owner.ID, storage.EmployeeFilter{DepartmentID: ptr(int64(2))})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Name).To(Equal("b"))
		})
	})

	Describe("departments and teams", func() {
		It("scopes departments and filters teams by department", func() {
			dept, err := store.CreateDepartment(ctx, &hrDatamodel.Department{UserID: owner.ID, Name: "Sales"})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateDepartment(ctx, &hrDatamodel.Department{UserID: other.ID, Name: "Ops"})
			Expect(err).NotTo(HaveOccurred())

			depts, err := store.ListDepartments(ctx, owner.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(depts).To(HaveLen(1))

			_, err = store.CreateTeam(ctx, &hrDatamodel.Team{UserID: owner.ID, Name: "Inbound", DepartmentID: &dept.ID})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateTeam(ctx, &hrDatamodel.Team{UserID: owner.ID, Name: "Floating"})
			Expect(err).NotTo(HaveOccurred())

			teams, err := store.ListTeams(ctx, owner.ID, storage.TeamFilter{DepartmentID: &dept.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(HaveLen(1))
			Expect(teams[0].Name).To(Equal("Inbound"))
		})

		It("lists team members by team and keeps orphans after the team is deleted", func() {
			team, err := store.CreateTeam(ctx, &hrDatamodel.Team{UserID: owner.ID, Name: "Core"})
			Expect(err).NotTo(HaveOccurred())
			member, err := store.CreateTeamMember(ctx, &hrDatamodel.TeamMember{TeamID: team.ID, EmployeeID: 7, Role: ptr("lead")})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateTeamMember(ctx, &hrDatamodel.TeamMember{TeamID: team.ID + 1, EmployeeID: 8})
			Expect(err).NotTo(HaveOccurred())

			members, err := store.ListTeamMembers(ctx, team.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(1))
			Expect(members[0].ID).To(Equal(member.ID))

			deleted, err := store.DeleteTeam(ctx, team.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			_, err = store.GetTeamMember(ctx, member.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("products", func() {
		It("ranks by sales, keeps ties in id order and honours the limit", func() {
			for _, p := range []*marketplaceDatamodel.Product{
				{UserID: owner.ID, Name: "unsold"},
				{UserID: owner.ID, Name: "steady", Sales: ptr(int64(10))},
				{UserID: owner.ID, Name: "hit", Sales: ptr(int64(50))},
				{UserID: owner.ID, Name: "steady too", Sales: ptr(int64(10))},
				{UserID: owner.ID, Name: "slow", Sales: ptr(int64(1))},
				{UserID: owner.ID, Name: "rare", Sales: ptr(int64(2))},
				{UserID: other.ID, Name: "foreign", Sales: ptr(int64(500))},
			} {
				_, err := store.CreateProduct(ctx, p)
				Expect(err).NotTo(HaveOccurred())
			}

			top, err := store.TopProducts(ctx, owner.ID, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(top).To(HaveLen(2))
			Expect(top[0].Name).To(Equal("hit"))
			Expect(top[1].Name).To(Equal("steady"))

			defaults, err := store.TopProducts(ctx, owner.ID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(defaults).To(HaveLen(storage.DefaultTopLimit))
			for i := 1; i < len(defaults); i++ {
				Expect(storage.Value(defaults[i-1].Sales)).To(BeNumerically(">=", storage.Value(defaults[i].Sales)))
			}
		})

		It("stores defaults it is given", func() {
			p, err := store.CreateProduct(ctx, &marketplaceDatamodel.Product{UserID: owner.ID, Name: "Mug", Price: ptr("12.50")})
			Expect(err).NotTo(HaveOccurred())

			got, err := store.GetProduct(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Inventory).To(Equal(int64(0)))
			Expect(got.IsPublished).To(BeFalse())
			Expect(got.Price).To(Equal(ptr("12.50")))

			updated, err := store.UpdateProduct(ctx, p.ID, storage.Patch{"isPublished": raw(true), "inventory": raw(3)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsPublished).To(BeTrue())
			Expect(updated.Inventory).To(Equal(int64(3)))
			Expect(updated.Name).To(Equal("Mug"))
		})
	})

	Describe("tasks", func() {
		It("ANDs every supplied filter", func() {
			for _, t := range []*operationsDatamodel.Task{
				{UserID: owner.ID, Title: "a", Status: "pending", Priority: "medium", AssignedTo: ptr(int64(1)), TeamID: ptr(int64(1))},
				{UserID: owner.ID, Title: "b", Status: "pending", Priority: "medium", AssignedTo: ptr(int64(1)), TeamID: ptr(int64(2))},
				{UserID: owner.ID, Title: "c", Status: "pending", Priority: "medium", AssignedTo: ptr(int64(2)), TeamID: ptr(int64(1))},
				{UserID: other.ID, Title: "d", Status: "pending", Priority: "medium", AssignedTo: ptr(int64(1)), TeamID: ptr(int64(1))},
			} {
				_, err := store.CreateTask(ctx, t)
				Expect(err).NotTo(HaveOccurred())
			}

			list, err := store.ListTasks(ctx, owner.ID, storage.TaskFilter{AssignedTo: ptr(int64(1)), TeamID: ptr(int64(1))})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Title).To(Equal("a"))

			byAssignee, err := store.ListTasks(ctx, owner.ID, storage.TaskFilter{AssignedTo: ptr(int64(1))})
			Expect(err).NotTo(HaveOccurred())
			Expect(byAssignee).To(HaveLen(2))

			none, err := store.ListTasks(ctx, owner.ID, storage.TaskFilter{ProjectID: ptr(int64(9))})
			Expect(err).NotTo(HaveOccurred())
			Expect(none).To(BeEmpty())
		})

		It("round-trips optional timestamps", func() {
			due := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
			t, err := store.CreateTask(ctx, &operationsDatamodel.Task{
				UserID: owner.ID, Title: "ship", Status: "pending", Priority: "high", DueDate: &due,
			})
			Expect(err).NotTo(HaveOccurred())

			got, err := store.GetTask(ctx, t.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.DueDate).NotTo(BeNil())
			Expect(*got.DueDate).To(BeTemporally("==", due))
		})
	})

	Describe("projects and meetings", func() {
		It("filters projects by team and meetings by team and project", func() {
			_, err := store.CreateProject(ctx, &operationsDatamodel.Project{UserID: owner.ID, Name: "Launch", Status: "planning", TeamID: ptr(int64(3))})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateProject(ctx, &operationsDatamodel.Project{UserID: owner.ID, Name: "Audit", Status: "active"})
			Expect(err).NotTo(HaveOccurred())

			projects, err := store.ListProjects(ctx, owner.ID, storage.ProjectFilter{TeamID: ptr(int64(3))})
			Expect(err).NotTo(HaveOccurred())
			Expect(projects).To(HaveLen(1))

			_, err = store.CreateMeeting(ctx, &operationsDatamodel.Meeting{UserID: owner.ID, Title: "Kickoff", TeamID: ptr(int64(3)), ProjectID: ptr(int64(1))})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateMeeting(ctx, &operationsDatamodel.Meeting{UserID: owner.ID, Title: "Standup", TeamID: ptr(int64(3))})
			Expect(err).NotTo(HaveOccurred())

			meetings, err := store.ListMeetings(ctx, owner.ID, storage.MeetingFilter{TeamID: ptr(int64(3)), ProjectID: ptr(int64(1))})
			Expect(err).NotTo(HaveOccurred())
			Expect(meetings).To(HaveLen(1))
			Expect(meetings[0].Title).To(Equal("Kickoff"))
		})
	})

	Describe("accounting", func() {
		It("filters financial records by type", func() {
			_, err := store.CreateFinancialRecord(ctx, &accountingDatamodel.FinancialRecord{UserID: owner.ID, Type: accountingDatamodel.RecordTypeIncome, Amount: "100.00"})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateFinancialRecord(ctx, &accountingDatamodel.FinancialRecord{UserID: owner.ID, Type: accountingDatamodel.RecordTypeExpense, Amount: "40.00"})
			Expect(err).NotTo(HaveOccurred())

			income, err := store.ListFinancialRecords(ctx, owner.ID, storage.FinancialRecordFilter{Type: ptr(accountingDatamodel.RecordTypeIncome)})
			Expect(err).NotTo(HaveOccurred())
			Expect(income).To(HaveLen(1))
			Expect(income[0].Amount).To(Equal("100.00"))
		})

		It("filters budgets by department and project", func() {
			_, err := store.CreateBudget(ctx, &accountingDatamodel.Budget{UserID: owner.ID, Name: "Q1", Amount: "1000", Spent: "0", DepartmentID: ptr(int64(1))})
			Expect(err).NotTo(HaveOccurred())
			_, err = store.CreateBudget(ctx, &accountingDatamodel.Budget{UserID: owner.ID, Name: "Q2", Amount: "500", Spent: "0", DepartmentID: ptr(int64(1)), ProjectID: ptr(int64(4))})
			Expect(err).NotTo(HaveOccurred())

			list, err := store.ListBudgets(ctx, owner.ID, storage.BudgetFilter{DepartmentID: ptr(int64(1)), ProjectID: ptr(int64(4))})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Name).To(Equal("Q2"))

			deleted, err := store.DeleteBudget(ctx, list[0].ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())
		})
	})
}
