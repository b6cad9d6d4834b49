package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/auth"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/storage/memory"
	"github.com/frahmantamala/bizmanager/internal/transport/middleware"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

func TestCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cmd Suite")
}

var _ = Describe("loadConfig", func() {
	var dir string

	writeConfig := func(body string) {
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600)).To(Succeed())
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		GinkgoT().Setenv("APP_ENV", "")
		GinkgoT().Setenv("DOCKER_ENV", "")
	})

	It("reads the file and fills in defaults", func() {
		writeConfig(`
env: development
storage:
  backend: memory
security:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  session_ttl: 2h
  bcrypt_cost: 10
`)
		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Storage.Backend).To(Equal(internal.StorageBackendMemory))
		Expect(cfg.Security.SessionTTL).To(Equal(2 * time.Hour))
		Expect(cfg.Server.Port).To(Equal(8080))
		Expect(cfg.Server.MaxBodyBytes).To(Equal(int64(1 << 20)))
		Expect(cfg.Observability.Metrics.Path).To(Equal("/metrics"))
		Expect(cfg.RateLimit.Burst).To(Equal(40))
	})

	It("rejects a short jwt secret", func() {
		writeConfig(`
storage:
  backend: memory
security:
  jwt_secret: "short"
`)
		_, err := loadConfig(dir)
		Expect(err).To(MatchError(ContainSubstring("JWTSecret")))
	})

	It("requires a database source for postgres", func() {
		writeConfig(`
storage:
  backend: postgres
security:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`)
		_, err := loadConfig(dir)
		Expect(err).To(MatchError(ContainSubstring("source is required")))
	})

	It("fails without a config file", func() {
		_, err := loadConfig(dir)
		Expect(err).To(MatchError(ContainSubstring("error reading config")))
	})
})

var _ = Describe("seedDemoBusiness", func() {
	var (
		ctx   context.Context
		store *memory.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New()
	})

	It("creates one record graph owned by the demo account", func() {
		Expect(seedDemoBusiness(ctx, store, "demo", "hash")).To(Succeed())

		u, err := store.GetUserByUsername(ctx, "demo")
		Expect(err).NotTo(HaveOccurred())
		Expect(*u.WebLink).To(Equal("bizmanager.com/demo-trading-co"))

		employees, err := store.ListEmployees(ctx, u.ID, storage.EmployeeFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(employees).To(HaveLen(3))

		teams, err := store.ListTeams(ctx, u.ID, storage.TeamFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(teams).To(HaveLen(1))
		members, err := store.ListTeamMembers(ctx, teams[0].ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(3))

		top, err := store.TopProducts(ctx, u.ID, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(top).To(HaveLen(1))
		Expect(top[0].Name).To(Equal("Coffee beans 1kg"))

		best, err := store.TopPerformingEmployees(ctx, u.ID, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(best[0].Name).To(Equal("Dewi"))

		budgets, err := store.ListBudgets(ctx, u.ID, storage.BudgetFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(budgets).To(HaveLen(1))
		Expect(budgets[0].Spent).To(Equal("0"))
	})

	It("refuses to seed the same username twice", func() {
		Expect(seedDemoBusiness(ctx, store, "demo", "hash")).To(Succeed())
		err := seedDemoBusiness(ctx, store, "demo", "hash")
		Expect(err).To(MatchError(storage.ErrConflict))
	})
})

var _ = Describe("runJanitor", func() {
	It("sweeps expired sessions until cancelled", func() {
		store := memory.New()
		lg := logger.Discard()
		service := auth.NewService(store, auth.NewJWTTokenGenerator("janitor-secret-janitor-secret-janitor"), time.Hour, 4, lg)
		limiter := middleware.NewRateLimiter(1, 1, nil)

		bgCtx := context.Background()
		u, err := store.CreateUser(bgCtx, &userDatamodel.User{Username: "sweeper", Password: "x", CompanyName: "Sweep"})
		Expect(err).NotTo(HaveOccurred())
		_, err = store.CreateSession(bgCtx, &userDatamodel.Session{ID: "expired", UserID: u.ID, ExpiresAt: time.Now().Add(-time.Minute)})
		Expect(err).NotTo(HaveOccurred())
		_, err = store.CreateSession(bgCtx, &userDatamodel.Session{ID: "live", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(bgCtx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			runJanitor(ctx, 10*time.Millisecond, service, limiter, lg)
		}()

		Eventually(func() error {
			_, err := store.GetSession(bgCtx, "expired")
			return err
		}).Should(MatchError(storage.ErrNotFound))

		_, err = store.GetSession(bgCtx, "live")
		Expect(err).NotTo(HaveOccurred())

		cancel()
		Eventually(done).Should(BeClosed())
	})
})
