package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/bizmanager/internal/auth"
	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/storage/postgres"
)

var (
	seedUsername string
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo business for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		var exists bool
		if err := db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", seedUsername); err != nil {
			log.Fatalf("failed to check for demo user: %v", err)
		}
		if exists {
			fmt.Println("demo user already exists; nothing to seed:", seedUsername)
			return
		}

		gdb, err := initGorm(db)
		if err != nil {
			log.Fatal(err)
		}

		hash, err := auth.HashPassword(seedPassword, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		if err := seedDemoBusiness(ctx, postgres.New(gdb), seedUsername, hash); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
		fmt.Println("Seeded demo business:", seedUsername)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUsername, "username", "demo", "username of the demo account")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password", "password of the demo account")
}

func ptr[T any](v T) *T { return &v }

// seedDemoBusiness writes one account with a handful of records of every kind.
func seedDemoBusiness(ctx context.Context, store storage.Storage, username, passwordHash string) error {
	u, err := store.CreateUser(ctx, &userDatamodel.User{
		Username:     username,
		Password:     passwordHash,
		CompanyName:  "Demo Trading Co",
		BusinessType: ptr("Retail"),
		WebLink:      ptr(auth.DeriveWebLink("Demo Trading Co")),
	})
	if err != nil {
		return fmt.Errorf("user: %w", err)
	}

	customer, err := store.CreateCustomer(ctx, &crmDatamodel.Customer{UserID: u.ID, Name: "Ayu Lestari", Email: ptr("ayu@example.com"), Type: ptr("retail")})
	if err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	if _, err := store.CreateComplaint(ctx, &crmDatamodel.Complaint{UserID: u.ID, CustomerID: &customer.ID, Subject: "Late delivery", Status: "open", Priority: "high"}); err != nil {
		return fmt.Errorf("complaint: %w", err)
	}

	dept, err := store.CreateDepartment(ctx, &hrDatamodel.Department{UserID: u.ID, Name: "Sales"})
	if err != nil {
		return fmt.Errorf("department: %w", err)
	}
	var employees []*hrDatamodel.Employee
	for i, name := range []string{"Budi", "Citra", "Dewi"} {
		e, err := store.CreateEmployee(ctx, &hrDatamodel.Employee{
			UserID:       u.ID,
			Name:         name,
			Position:     ptr("Sales associate"),
			DepartmentID: &dept.ID,
			Status:       "active",
			Performance:  ptr(int64(70 + i*10)),
		})
		if err != nil {
			return fmt.Errorf("employee: %w", err)
		}
		employees = append(employees, e)
	}

	team, err := store.CreateTeam(ctx, &hrDatamodel.Team{UserID: u.ID, Name: "Floor team", DepartmentID: &dept.ID, LeaderID: &employees[2].ID})
	if err != nil {
		return fmt.Errorf("team: %w", err)
	}
	for _, e := range employees {
		if _, err := store.CreateTeamMember(ctx, &hrDatamodel.TeamMember{TeamID: team.ID, EmployeeID: e.ID}); err != nil {
			return fmt.Errorf("team member: %w", err)
		}
	}

	products := []marketplaceDatamodel.Product{
		{Name: "Coffee beans 1kg", Price: ptr("18.50"), Inventory: 40, IsPublished: true, Sales: ptr(int64(120)), Revenue: ptr("2220.00")},
		{Name: "Pour-over kettle", Price: ptr("45.00"), Inventory: 8, IsPublished: true, Sales: ptr(int64(15)), Revenue: ptr("675.00")},
		{Name: "Paper filters", Price: ptr("4.00"), Inventory: 200},
	}
	for i := range products {
		products[i].UserID = u.ID
		if _, err := store.CreateProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("product: %w", err)
		}
	}

	project, err := store.CreateProject(ctx, &operationsDatamodel.Project{UserID: u.ID, Name: "Store refit", Status: "planning", TeamID: &team.ID})
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	if _, err := store.CreateTask(ctx, &operationsDatamodel.Task{UserID: u.ID, Title: "Order shelving", Status: "pending", Priority: "medium", AssignedTo: &employees[0].ID, TeamID: &team.ID, ProjectID: &project.ID}); err != nil {
		return fmt.Errorf("task: %w", err)
	}
	if _, err := store.CreateMeeting(ctx, &operationsDatamodel.Meeting{UserID: u.ID, Title: "Refit kickoff", TeamID: &team.ID, ProjectID: &project.ID, Location: ptr("Back office")}); err != nil {
		return fmt.Errorf("meeting: %w", err)
	}

	if _, err := store.CreateFinancialRecord(ctx, &accountingDatamodel.FinancialRecord{UserID: u.ID, Type: accountingDatamodel.RecordTypeIncome, Amount: "2895.00", Category: ptr("sales")}); err != nil {
		return fmt.Errorf("financial record: %w", err)
	}
	if _, err := store.CreateBudget(ctx, &accountingDatamodel.Budget{UserID: u.ID, Name: "Refit", Amount: "5000.00", Spent: "0", ProjectID: &project.ID}); err != nil {
		return fmt.Errorf("budget: %w", err)
	}

	return nil
}
