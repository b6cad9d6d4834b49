package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/core/events"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("Sensitive data filtering", func() {
	It("masks credentials inside nested JSON", func() {
		out := filterSensitiveBody([]byte(`{"username":"alice","password":"hunter22","profile":{"apiToken":"abc"},"items":[{"secret":"x","name":"ok"}]}`))

		var got map[string]interface{}
		Expect(json.Unmarshal([]byte(out), &got)).To(Succeed())
		Expect(got["username"]).To(Equal("alice"))
		Expect(got["password"]).To(Equal(filtered))
		Expect(got["profile"]).To(HaveKeyWithValue("apiToken", filtered))
		Expect(got["items"]).To(ConsistOf(And(HaveKeyWithValue("secret", filtered), HaveKeyWithValue("name", "ok"))))
	})

	It("drops non-JSON bodies that mention a credential", func() {
		Expect(filterSensitiveBody([]byte("password=hunter22"))).To(Equal("[FILTERED - Contains sensitive data]"))
		Expect(filterSensitiveBody([]byte("plain text"))).To(Equal("plain text"))
		Expect(filterSensitiveBody(nil)).To(BeEmpty())
	})

	It("truncates large bodies", func() {
		Expect(filterSensitiveBody(bytes.Repeat([]byte("a"), maxLoggedBody+1))).To(Equal("[TRUNCATED]"))
	})

	It("masks credential headers", func() {
		h := http.Header{}
		h.Set("Authorization", "Bearer abc")
		h.Set("Cookie", "bizmanager_session=abc")
		h.Set("Accept", "application/json")

		out := filterSensitiveHeaders(h)
		Expect(out).To(HaveKeyWithValue("Authorization", filtered))
		Expect(out).To(HaveKeyWithValue("Cookie", filtered))
		Expect(out).To(HaveKeyWithValue("Accept", "application/json"))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		logger.Setup("test", logger.Options{Format: "json", Level: "debug", Output: buf})
	})

	AfterEach(func() {
		logger.Setup("test", logger.Options{Output: GinkgoWriter})
	})

	It("logs the request without its password and the response at warn level", func() {
		h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
			Expect(body["password"]).To(Equal("hunter22"))
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"missing"}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"hunter22"}`))
		h.ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		Expect(out).NotTo(ContainSubstring("hunter22"))
		Expect(out).To(ContainSubstring(`"msg":"incoming request"`))
		Expect(out).To(ContainSubstring(`"level":"WARN","msg":"response"`))
		Expect(out).To(ContainSubstring(`"status_code":404`))
	})

	It("carries the request id into every line", func() {
		h := RequestID(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		h.ServeHTTP(httptest.NewRecorder(), req)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(2))
		for _, line := range lines {
			Expect(line).To(ContainSubstring(`"request_id":"req-42"`))
		}
	})
})

var _ = Describe("MaxBodySize", func() {
	var reached bool

	BeforeEach(func() {
		reached = false
	})

	It("refuses a declared length over the limit", func() {
		h := MaxBodySize(16)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			reached = true
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(strings.Repeat("x", 17))))

		Expect(reached).To(BeFalse())
		Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["error"]["code"]).To(Equal(string(internal.ErrCodeBodyTooLarge)))
	})

	It("stops a streamed body at the limit behind request logging", func() {
		var readErr error
		h := MaxBodySize(maxLoggedBody*2)(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			_, readErr = io.ReadAll(r.Body)
		})))

		req := httptest.NewRequest(http.MethodPost, "/api/customers", io.MultiReader(strings.NewReader(strings.Repeat("x", maxLoggedBody*3))))
		req.ContentLength = -1
		h.ServeHTTP(httptest.NewRecorder(), req)

		Expect(reached).To(BeTrue())
		var tooLarge *http.MaxBytesError
		Expect(errors.As(readErr, &tooLarge)).To(BeTrue())
		Expect(tooLarge.Limit).To(Equal(int64(maxLoggedBody * 2)))
	})

	It("hands the whole body on when it is within the limit", func() {
		var got []byte
		h := MaxBodySize(0)(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = io.ReadAll(r.Body)
		})))

		payload := strings.Repeat("y", maxLoggedBody*2)
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(payload)))

		Expect(string(got)).To(Equal(payload))
	})
})

var _ = Describe("RequestID", func() {
	It("mints an id when the client sends none", func() {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = chimiddleware.GetReqID(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Header().Get(RequestIDHeader)).To(Equal(seen))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("answers a panic with the internal error envelope", func() {
		h := RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["error"]["code"]).To(Equal(string(internal.ErrCodeInternal)))
		Expect(rec.Body.String()).NotTo(ContainSubstring("boom"))
	})

	It("lets an aborted handler through", func() {
		h := RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		Expect(func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		}).To(PanicWith(http.ErrAbortHandler))
	})
})

var _ = Describe("RateLimiter", func() {
	var limited int

	onLimit := func(w http.ResponseWriter, _ *http.Request) {
		limited++
		w.WriteHeader(http.StatusTooManyRequests)
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(h http.Handler, userID int64, remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		if userID != 0 {
			req = req.WithContext(internal.ContextWithUser(req.Context(), &internal.SessionUser{ID: userID}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	BeforeEach(func() {
		limited = 0
	})

	It("is disabled by a non-positive rate", func() {
		rl := NewRateLimiter(0, 5, onLimit)
		Expect(rl).To(BeNil())
		for i := 0; i < 10; i++ {
			Expect(serve(rl.Handler(ok), 0, "10.0.0.1:1000")).To(Equal(http.StatusOK))
		}
		Expect(rl.Cleanup(time.Minute)).To(BeZero())
	})

	It("keeps one bucket per user and per ip", func() {
		rl := NewRateLimiter(0.001, 1, onLimit)
		h := rl.Handler(ok)

		Expect(serve(h, 1, "10.0.0.1:1000")).To(Equal(http.StatusOK))
		Expect(serve(h, 1, "10.0.0.2:1000")).To(Equal(http.StatusTooManyRequests))
		Expect(serve(h, 2, "10.0.0.1:1000")).To(Equal(http.StatusOK))
		Expect(serve(h, 0, "10.0.0.1:1000")).To(Equal(http.StatusOK))
		Expect(serve(h, 0, "10.0.0.1:2000")).To(Equal(http.StatusTooManyRequests))
		Expect(limited).To(Equal(2))
	})

	It("forgets idle callers", func() {
		rl := NewRateLimiter(1, 1, onLimit)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }

		serve(rl.Handler(ok), 1, "10.0.0.1:1000")
		now = now.Add(30 * time.Second)
		serve(rl.Handler(ok), 2, "10.0.0.1:1000")
		now = now.Add(45 * time.Second)

		Expect(rl.Cleanup(time.Minute)).To(Equal(1))
		Expect(rl.limiters).To(HaveKey("user:2"))
		Expect(rl.limiters).NotTo(HaveKey("user:1"))
	})
})

var _ = Describe("Metrics", func() {
	scrape := func(m *Metrics) string {
		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		return rec.Body.String()
	}

	It("labels requests by route pattern", func() {
		m := NewMetrics()
		r := chi.NewRouter()
		r.Use(m.Instrument)
		r.Get("/api/customers/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		for _, path := range []string{"/api/customers/1", "/api/customers/2", "/nowhere"} {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		}

		out := scrape(m)
		Expect(out).To(ContainSubstring(`bizmanager_http_requests_total{method="GET",route="/api/customers/{id}",status="418"} 2`))
		Expect(out).NotTo(ContainSubstring(`/api/customers/1`))
	})

	It("counts record changes from the bus", func() {
		m := NewMetrics()
		bus := events.NewEventBus(logger.Discard())
		m.Subscribe(bus)

		bus.Publish(context.Background(), events.NewActivity("budget", events.ActionCreated, 1, 7))
		bus.Publish(context.Background(), events.NewActivity("budget", events.ActionUpdated, 1, 7))
		bus.Publish(context.Background(), events.NewActivity("budget", events.ActionUpdated, 1, 7))
		bus.Wait()

		out := scrape(m)
		Expect(out).To(ContainSubstring(`bizmanager_records_changes_total{action="created",kind="budget"} 1`))
		Expect(out).To(ContainSubstring(`bizmanager_records_changes_total{action="updated",kind="budget"} 2`))
	})
})
