// Package dashboard serves the read-only rankings and activity feed shown on
// the business overview.
package dashboard

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bizmanager/internal"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	"github.com/frahmantamala/bizmanager/internal/core/events"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

const (
	MaxTopLimit          = 100
	DefaultActivityLimit = 10
	MaxActivityLimit     = 50
)

type Rankings interface {
	TopPerformingEmployees(ctx context.Context, ownerID int64, limit int) ([]*hrDatamodel.Employee, error)
	TopProducts(ctx context.Context, ownerID int64, limit int) ([]*marketplaceDatamodel.Product, error)
}

type ActivityFeed interface {
	Recent(ownerID int64, limit int) []events.Activity
}

type Handler struct {
	*transport.BaseHandler
	rankings Rankings
	feed     ActivityFeed
}

func NewHandler(base *transport.BaseHandler, rankings Rankings, feed ActivityFeed) *Handler {
	return &Handler{
		BaseHandler: base,
		rankings:    rankings,
		feed:        feed,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/top-employees", h.TopEmployees)
	r.Get("/top-products", h.TopProducts)
	r.Get("/activities", h.Activities)
}

func (h *Handler) TopEmployees(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	employees, err := h.rankings.TopPerformingEmployees(r.Context(), user.ID, h.QueryLimit(r, storage.DefaultTopLimit, MaxTopLimit))
	if err != nil {
		h.HandleServiceError(w, err, "Employee")
		return
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	products, err := h.rankings.TopProducts(r.Context(), user.ID, h.QueryLimit(r, storage.DefaultTopLimit, MaxTopLimit))
	if err != nil {
		h.HandleServiceError(w, err, "Product")
		return
	}
	h.WriteJSON(w, http.StatusOK, products)
}

// Activities lists the caller's recent changes, newest first.
func (h *Handler) Activities(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	h.WriteJSON(w, http.StatusOK, h.feed.Recent(user.ID, h.QueryLimit(r, DefaultActivityLimit, MaxActivityLimit)))
}
