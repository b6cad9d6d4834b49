package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/activity"
	"github.com/frahmantamala/bizmanager/internal/auth"
	"github.com/frahmantamala/bizmanager/internal/core/events"
	"github.com/frahmantamala/bizmanager/internal/storage/memory"
	"github.com/frahmantamala/bizmanager/internal/transport"
	"github.com/frahmantamala/bizmanager/internal/transport/middleware"
	"github.com/frahmantamala/bizmanager/internal/transport/rest"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	logger.Setup("test", logger.Options{Output: GinkgoWriter})
	RunSpecs(t, "REST Router Suite")
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Errors []internal.ValidationError `json:"errors"`
		} `json:"details"`
	} `json:"error"`
}

type server struct {
	router *chi.Mux
	bus    *events.EventBus
}

func newServer(limiter *middleware.RateLimiter, health *rest.HealthHandler) *server {
	lg := logger.Discard()
	store := memory.New()
	bus := events.NewEventBus(lg)
	recorder := activity.NewRecorder(activity.DefaultCapacity, lg)
	recorder.Subscribe(bus)
	metrics := middleware.NewMetrics()
	metrics.Subscribe(bus)

	base := &transport.BaseHandler{Logger: lg}
	authService := auth.NewService(store, auth.NewJWTTokenGenerator("router-test-secret-router-test-secret"), time.Hour, bcrypt.MinCost, lg)

	handlers := rest.NewHandlers(rest.HandlerDeps{
		Base:   base,
		Store:  store,
		Bus:    bus,
		Feed:   recorder,
		Auth:   authService,
		Logger: lg,
	})

	if health == nil {
		health = rest.NewHealthHandler(map[string]rest.Pinger{"memory": store})
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, handlers, rest.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		Health:         health,
		Metrics:        metrics,
		MetricsPath:    "/metrics",
		RateLimiter:    limiter,
	}, lg)

	return &server{router: router, bus: bus}
}

func (s *server) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *server) register(username string) string {
	rec := s.do(http.MethodPost, "/api/register", "", map[string]interface{}{
		"username":    username,
		"password":    "secret123",
		"companyName": username + " Trading Co",
	})
	Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())

	var resp auth.AuthResponse
	Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
	Expect(resp.Token).NotTo(BeEmpty())
	return resp.Token
}

func decodeError(rec *httptest.ResponseRecorder) apiError {
	var e apiError
	Expect(json.Unmarshal(rec.Body.Bytes(), &e)).To(Succeed())
	return e
}

func decodeMap(rec *httptest.ResponseRecorder) map[string]interface{} {
	var m map[string]interface{}
	Expect(json.Unmarshal(rec.Body.Bytes(), &m)).To(Succeed())
	return m
}

func decodeList(rec *httptest.ResponseRecorder) []map[string]interface{} {
	var l []map[string]interface{}
	Expect(json.Unmarshal(rec.Body.Bytes(), &l)).To(Succeed())
	return l
}

func idOf(m map[string]interface{}) int64 {
	return int64(m["id"].(float64))
}

var _ = Describe("Router Integration", func() {
	var srv *server

	BeforeEach(func() {
		srv = newServer(nil, nil)
	})

	Describe("authentication", func() {
		It("rejects protected routes without a token", func() {
			rec := srv.do(http.MethodGet, "/api/customers", "", nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeError(rec).Error.Code).To(Equal(string(internal.ErrCodeUnauthenticated)))
		})

		It("rejects a garbage token", func() {
			rec := srv.do(http.MethodGet, "/api/customers", "not-a-jwt", nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeError(rec).Error.Code).To(Equal(string(internal.ErrCodeInvalidToken)))
		})

		It("registers, sets the session cookie and serves the current user", func() {
			rec := srv.do(http.MethodPost, "/api/register", "", map[string]interface{}{
				"username":    "alice",
				"password":    "secret123",
				"companyName": "Acme Supplies",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated))

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(auth.SessionCookieName))
			Expect(cookies[0].HttpOnly).To(BeTrue())

			body := decodeMap(rec)
			Expect(body["username"]).To(Equal("alice"))
			Expect(body["webLink"]).To(Equal("bizmanager.com/acme-supplies"))
			Expect(body).NotTo(HaveKey("password"))

			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			req.AddCookie(cookies[0])
			me := httptest.NewRecorder()
			srv.router.ServeHTTP(me, req)
			Expect(me.Code).To(Equal(http.StatusOK))
			Expect(decodeMap(me)["companyName"]).To(Equal("Acme Supplies"))
		})

		It("rejects a taken username", func() {
			srv.register("alice")
			rec := srv.do(http.MethodPost, "/api/register", "", map[string]interface{}{
				"username":    "alice",
				"password":    "another1",
				"companyName": "Other",
			})
			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(decodeError(rec).Error.Code).To(Equal(string(internal.ErrCodeUsernameTaken)))
		})

		It("rejects a blank company name", func() {
			rec := srv.do(http.MethodPost, "/api/register", "", map[string]interface{}{
				"username":    "alice",
				"password":    "secret123",
				"companyName": "   ",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			errs := decodeError(rec).Error.Details.Errors
			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Field).To(Equal("companyName"))
		})

		It("refuses an oversized body", func() {
			rec := srv.do(http.MethodPost, "/api/register", "", map[string]interface{}{
				"username":    "alice",
				"password":    "secret123",
				"companyName": strings.Repeat("a", int(middleware.DefaultMaxBodyBytes)),
			})
			Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
			Expect(decodeError(rec).Error.Code).To(Equal(string(internal.ErrCodeBodyTooLarge)))
		})

		It("logs in and out", func() {
			srv.register("alice")

			rec := srv.do(http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "wrong-password"})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeError(rec).Error.Code).To(Equal(string(internal.ErrCodeInvalidCredentials)))

			rec = srv.do(http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "secret123"})
			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp auth.AuthResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())

			Expect(srv.do(http.MethodPost, "/api/logout", resp.Token, nil).Code).To(Equal(http.StatusNoContent))

			rec = srv.do(http.MethodGet, "/api/user", resp.Token, nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decodeError(rec).Error.Code).To(Equal(string(internal.ErrCodeSessionExpired)))
		})
	})

	Describe("record routes", func() {
		var alice, bob string

		BeforeEach(func() {
			alice = srv.register("alice")
			bob = srv.register("bob")
		})

		It("runs the full lifecycle of a customer", func() {
			rec := srv.do(http.MethodPost, "/api/customers", alice, map[string]interface{}{
				"name":  "Globex",
				"email": "buyer@globex.test",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			created := decodeMap(rec)
			id := idOf(created)
			path := "/api/customers/" + strconv.FormatInt(id, 10)

			rec = srv.do(http.MethodGet, path, alice, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeMap(rec)["name"]).To(Equal("Globex"))

			rec = srv.do(http.MethodPut, path, alice, map[string]interface{}{
				"notes":  "prefers email",
				"userId": 9999,
			})
			Expect(rec.Code).To(Equal(http.StatusOK))
			updated := decodeMap(rec)
			Expect(updated["notes"]).To(Equal("prefers email"))
			Expect(updated["userId"]).To(Equal(created["userId"]))
			Expect(updated["email"]).To(Equal("buyer@globex.test"))

			rec = srv.do(http.MethodGet, "/api/customers", alice, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeList(rec)).To(HaveLen(1))

			Expect(srv.do(http.MethodDelete, path, alice, nil).Code).To(Equal(http.StatusNoContent))
			Expect(srv.do(http.MethodGet, path, alice, nil).Code).To(Equal(http.StatusNotFound))
			Expect(srv.do(http.MethodDelete, path, alice, nil).Code).To(Equal(http.StatusNotFound))
		})

		It("hides records from other users", func() {
			rec := srv.do(http.MethodPost, "/api/products", alice, map[string]interface{}{
				"name":      "Widget",
				"price":     "19.99",
				"inventory": 10,
			})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			path := "/api/products/" + strconv.FormatInt(idOf(decodeMap(rec)), 10)

			rec = srv.do(http.MethodGet, path, bob, nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			e := decodeError(rec)
			Expect(e.Error.Code).To(Equal(string(internal.ErrCodeResourceNotFound)))
			Expect(e.Error.Message).To(Equal("Product not found"))

			Expect(srv.do(http.MethodPut, path, bob, map[string]interface{}{"name": "Stolen"}).Code).To(Equal(http.StatusNotFound))
			Expect(srv.do(http.MethodDelete, path, bob, nil).Code).To(Equal(http.StatusNotFound))

			rec = srv.do(http.MethodGet, "/api/products", bob, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeList(rec)).To(BeEmpty())

			rec = srv.do(http.MethodGet, path, alice, nil)
			Expect(decodeMap(rec)["name"]).To(Equal("Widget"))
		})

		It("treats a malformed id as not found", func() {
			rec := srv.do(http.MethodGet, "/api/tasks/abc", alice, nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decodeError(rec).Error.Message).To(Equal("Task not found"))
		})

		It("rejects a non-integer filter", func() {
			rec := srv.do(http.MethodGet, "/api/employees?departmentId=sales", alice, nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			e := decodeError(rec)
			Expect(e.Error.Details.Errors).To(HaveLen(1))
			Expect(e.Error.Details.Errors[0].Field).To(Equal("departmentId"))
			Expect(e.Error.Details.Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidQuery)))
		})

		It("filters lists by query parameters", func() {
			for _, kind := range []string{"income", "expense", "income"} {
				rec := srv.do(http.MethodPost, "/api/financial-records", alice, map[string]interface{}{
					"type":   kind,
					"amount": "100.00",
				})
				Expect(rec.Code).To(Equal(http.StatusCreated))
			}

			rec := srv.do(http.MethodGet, "/api/financial-records?type=income", alice, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeList(rec)).To(HaveLen(2))
		})

		It("reports every failing field", func() {
			rec := srv.do(http.MethodPost, "/api/financial-records", alice, map[string]interface{}{
				"type": "gift",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			e := decodeError(rec)
			Expect(e.Error.Code).To(Equal(string(internal.ErrCodeValidationFailed)))

			fields := make([]string, 0, len(e.Error.Details.Errors))
			for _, fe := range e.Error.Details.Errors {
				fields = append(fields, fe.Field)
			}
			Expect(fields).To(ConsistOf("type", "amount"))
		})

		It("rejects a body of the wrong type", func() {
			rec := srv.do(http.MethodPost, "/api/products", alice, map[string]interface{}{
				"name":      "Widget",
				"inventory": "lots",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Error.Details.Errors[0].Field).To(Equal("inventory"))
		})

		It("links complaints only to the caller's customers", func() {
			rec := srv.do(http.MethodPost, "/api/customers", bob, map[string]interface{}{"name": "Bob's client"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			foreign := idOf(decodeMap(rec))

			rec = srv.do(http.MethodPost, "/api/complaints", alice, map[string]interface{}{"subject": "Late", "customerId": foreign})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Error.Details.Errors[0].Field).To(Equal("customerId"))

			rec = srv.do(http.MethodPost, "/api/customers", alice, map[string]interface{}{"name": "Initech"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			own := idOf(decodeMap(rec))

			rec = srv.do(http.MethodPost, "/api/complaints", alice, map[string]interface{}{"subject": "Late", "customerId": own})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			complaintPath := "/api/complaints/" + strconv.FormatInt(idOf(decodeMap(rec)), 10)

			rec = srv.do(http.MethodPut, complaintPath, alice, map[string]interface{}{"customerId": foreign})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Error.Details.Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidReference)))

			// No cascade: the complaint outlives its customer and stays editable.
			Expect(srv.do(http.MethodDelete, "/api/customers/"+strconv.FormatInt(own, 10), alice, nil).Code).To(Equal(http.StatusNoContent))
			rec = srv.do(http.MethodPut, complaintPath, alice, map[string]interface{}{"status": "resolved"})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(int64(decodeMap(rec)["customerId"].(float64))).To(Equal(own))
		})

		It("applies defaults on create", func() {
			rec := srv.do(http.MethodPost, "/api/complaints", alice, map[string]interface{}{"subject": "Late delivery"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			body := decodeMap(rec)
			Expect(body["status"]).To(Equal("open"))
			Expect(body["priority"]).To(Equal("medium"))
		})
	})

	Describe("team roster", func() {
		var alice, bob string
		var teamID, employeeID int64

		BeforeEach(func() {
			alice = srv.register("alice")
			bob = srv.register("bob")

			rec := srv.do(http.MethodPost, "/api/teams", alice, map[string]interface{}{"name": "Platform"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			teamID = idOf(decodeMap(rec))

			rec = srv.do(http.MethodPost, "/api/employees", alice, map[string]interface{}{"name": "Dewi"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			employeeID = idOf(decodeMap(rec))
		})

		It("adds members under the team in the path", func() {
			path := "/api/teams/" + strconv.FormatInt(teamID, 10) + "/members"
			rec := srv.do(http.MethodPost, path, alice, map[string]interface{}{
				"teamId":     424242,
				"employeeId": employeeID,
				"role":       "lead",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			member := decodeMap(rec)
			Expect(int64(member["teamId"].(float64))).To(Equal(teamID))

			rec = srv.do(http.MethodGet, path, alice, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeList(rec)).To(HaveLen(1))

			memberPath := "/api/team-members/" + strconv.FormatInt(idOf(member), 10)
			rec = srv.do(http.MethodPut, memberPath, alice, map[string]interface{}{"role": "member", "teamId": 1})
			Expect(rec.Code).To(Equal(http.StatusOK))
			updated := decodeMap(rec)
			Expect(updated["role"]).To(Equal("member"))
			Expect(int64(updated["teamId"].(float64))).To(Equal(teamID))

			Expect(srv.do(http.MethodGet, memberPath, bob, nil).Code).To(Equal(http.StatusNotFound))
			Expect(srv.do(http.MethodDelete, memberPath, alice, nil).Code).To(Equal(http.StatusNoContent))
		})

		It("orphans members when their team is deleted", func() {
			rec := srv.do(http.MethodPost, "/api/teams/"+strconv.FormatInt(teamID, 10)+"/members", alice, map[string]interface{}{"employeeId": employeeID})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			memberPath := "/api/team-members/" + strconv.FormatInt(idOf(decodeMap(rec)), 10)

			Expect(srv.do(http.MethodDelete, "/api/teams/"+strconv.FormatInt(teamID, 10), alice, nil).Code).To(Equal(http.StatusNoContent))
			Expect(srv.do(http.MethodGet, memberPath, alice, nil).Code).To(Equal(http.StatusNotFound))
		})

		It("hides a foreign team's roster", func() {
			path := "/api/teams/" + strconv.FormatInt(teamID, 10) + "/members"
			Expect(srv.do(http.MethodGet, path, bob, nil).Code).To(Equal(http.StatusNotFound))

			rec := srv.do(http.MethodPost, path, bob, map[string]interface{}{"employeeId": employeeID})
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decodeError(rec).Error.Message).To(Equal("Team not found"))
		})

		It("refuses an employee of another business", func() {
			rec := srv.do(http.MethodPost, "/api/employees", bob, map[string]interface{}{"name": "Spy"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			foreign := idOf(decodeMap(rec))

			path := "/api/teams/" + strconv.FormatInt(teamID, 10) + "/members"
			for _, id := range []int64{foreign, 424242} {
				rec = srv.do(http.MethodPost, path, alice, map[string]interface{}{"employeeId": id})
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				e := decodeError(rec)
				Expect(e.Error.Details.Errors).To(HaveLen(1))
				Expect(e.Error.Details.Errors[0].Field).To(Equal("employeeId"))
				Expect(e.Error.Details.Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidReference)))
			}

			rec = srv.do(http.MethodPost, path, alice, map[string]interface{}{"employeeId": employeeID})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			memberPath := "/api/team-members/" + strconv.FormatInt(idOf(decodeMap(rec)), 10)
			rec = srv.do(http.MethodPut, memberPath, alice, map[string]interface{}{"employeeId": foreign})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			rec = srv.do(http.MethodGet, memberPath, alice, nil)
			Expect(int64(decodeMap(rec)["employeeId"].(float64))).To(Equal(employeeID))
		})
	})

	Describe("dashboard", func() {
		var alice string

		BeforeEach(func() {
			alice = srv.register("alice")
		})

		It("ranks products by sales", func() {
			for name, sales := range map[string]int{"Low": 1, "High": 50, "Mid": 10} {
				rec := srv.do(http.MethodPost, "/api/products", alice, map[string]interface{}{
					"name":  name,
					"sales": sales,
				})
				Expect(rec.Code).To(Equal(http.StatusCreated))
			}

			rec := srv.do(http.MethodGet, "/api/dashboard/top-products?limit=2", alice, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			top := decodeList(rec)
			Expect(top).To(HaveLen(2))
			Expect(top[0]["name"]).To(Equal("High"))
			Expect(top[1]["name"]).To(Equal("Mid"))
		})

		It("lists recent activity newest first", func() {
			rec := srv.do(http.MethodPost, "/api/customers", alice, map[string]interface{}{"name": "Initech"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			id := idOf(decodeMap(rec))
			Expect(srv.do(http.MethodDelete, "/api/customers/"+strconv.FormatInt(id, 10), alice, nil).Code).To(Equal(http.StatusNoContent))
			srv.bus.Wait()

			rec = srv.do(http.MethodGet, "/api/dashboard/activities", alice, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			feed := decodeList(rec)
			Expect(feed).To(HaveLen(2))
			Expect(feed[0]["action"]).To(Equal("deleted"))
			Expect(feed[1]["action"]).To(Equal("created"))
			Expect(feed[1]["kind"]).To(Equal("customer"))
		})
	})

	Describe("profile", func() {
		It("updates the profile and accepts a password change request", func() {
			token := srv.register("alice")

			rec := srv.do(http.MethodPut, "/api/profile", token, map[string]interface{}{"businessType": "retail"})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeMap(rec)["businessType"]).To(Equal("retail"))

			rec = srv.do(http.MethodPut, "/api/change-password", token, map[string]interface{}{
				"currentPassword": "secret123",
				"newPassword":     "short",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			rec = srv.do(http.MethodPut, "/api/change-password", token, map[string]interface{}{
				"currentPassword": "secret123",
				"newPassword":     "longer-secret",
			})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeMap(rec)["message"]).To(Equal("Password change request received"))
		})
	})

	Describe("observability", func() {
		It("echoes a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(middleware.RequestIDHeader, "req-123")
			rec := httptest.NewRecorder()
			srv.router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get(middleware.RequestIDHeader)).To(Equal("req-123"))
		})

		It("exposes request and change counters", func() {
			token := srv.register("alice")
			Expect(srv.do(http.MethodPost, "/api/customers", token, map[string]interface{}{"name": "Hooli"}).Code).To(Equal(http.StatusCreated))
			srv.bus.Wait()

			rec := srv.do(http.MethodGet, "/metrics", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			body := rec.Body.String()
			Expect(body).To(ContainSubstring(`route="/api/customers/"`))
			Expect(body).To(ContainSubstring(`records_changes_total{action="created",kind="customer"} 1`))
		})

		It("serves the api document", func() {
			rec := srv.do(http.MethodGet, "/openapi.yml", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(HavePrefix("openapi: 3.0.3"))
		})
	})

	Describe("rate limiting", func() {
		It("answers 429 once the burst is spent", func() {
			base := &transport.BaseHandler{Logger: logger.Discard()}
			limiter := middleware.NewRateLimiter(0.001, 1, func(w http.ResponseWriter, _ *http.Request) {
				base.WriteAppError(w, internal.NewTooManyRequestsError("Too many requests"))
			})
			srv = newServer(limiter, nil)

			login := map[string]string{"username": "nobody", "password": "whatever1"}
			Expect(srv.do(http.MethodPost, "/api/login", "", login).Code).To(Equal(http.StatusUnauthorized))

			rec := srv.do(http.MethodPost, "/api/login", "", login)
			Expect(rec.Code).To(Equal(http.StatusTooManyRequests))
			Expect(rec.Header().Get("Retry-After")).To(Equal("1"))
			Expect(decodeError(rec).Error.Code).To(Equal(string(internal.ErrCodeRateLimited)))
		})
	})

	Describe("health", func() {
		It("reports healthy when every component answers", func() {
			rec := srv.do(http.MethodGet, "/health", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeMap(rec)["status"]).To(Equal("healthy"))
		})

		It("reports a failing database", func() {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			Expect(err).NotTo(HaveOccurred())
			defer db.Close()
			mock.ExpectPing().WillReturnError(context.DeadlineExceeded)

			srv = newServer(nil, rest.NewHealthHandler(map[string]rest.Pinger{"postgres": db}))
			rec := srv.do(http.MethodGet, "/health", "", nil)
			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

			var resp rest.HealthResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
			Expect(resp.Components["postgres"].Status).To(Equal(rest.HealthUnhealthy))
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})
	})

	Describe("api document", func() {
		It("validates and documents every mounted api route", func() {
			doc, err := rest.LoadOpenAPI(context.Background())
			Expect(err).NotTo(HaveOccurred())

			err = chi.Walk(srv.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				if !strings.HasPrefix(route, "/api/") {
					return nil
				}
				path := strings.TrimSuffix(route, "/")
				item := doc.Paths.Find(path)
				Expect(item).NotTo(BeNil(), "undocumented path %s", path)
				Expect(item.GetOperation(method)).NotTo(BeNil(), "undocumented %s %s", method, path)
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
