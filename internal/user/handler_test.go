package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bizmanager/internal"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/storage/memory"
	"github.com/frahmantamala/bizmanager/internal/transport"
	"github.com/frahmantamala/bizmanager/internal/user"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

var _ = Describe("Profile handler", func() {
	var (
		store   *memory.Store
		handler *user.Handler
	)

	BeforeEach(func() {
		store = memory.New()
		handler = user.NewHandler(transport.NewBaseHandler(logger.Discard()), user.NewService(store, logger.Discard()))
	})

	put := func(userID int64, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
		req = req.WithContext(internal.ContextWithUser(req.Context(), &internal.SessionUser{ID: userID}))
		rec := httptest.NewRecorder()
		handler.UpdateProfile(rec, req)
		return rec
	}

	It("merges the supplied fields", func() {
		u, err := store.CreateUser(context.Background(), &userDatamodel.User{Username: "acme", Password: "x", CompanyName: "Acme"})
		Expect(err).NotTo(HaveOccurred())

		rec := put(u.ID, `{"businessType":"retail"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		got, err := store.GetUser(context.Background(), u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(*got.BusinessType).To(Equal("retail"))
		Expect(got.CompanyName).To(Equal("Acme"))
	})

	It("reports an account that no longer exists", func() {
		rec := put(99, `{"businessType":"retail"}`)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["error"]["code"]).To(Equal(string(internal.ErrCodeUserNotFound)))
		Expect(body["error"]["message"]).To(Equal("User not found"))

		_, err := store.GetUser(context.Background(), 99)
		Expect(err).To(MatchError(storage.ErrNotFound))
	})

	It("rejects a blank company name", func() {
		rec := put(1, `{"companyName":"  "}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
