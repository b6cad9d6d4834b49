package resource

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/core/common/validation"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

// Keys an update body may never change; ownership and identity are fixed.
var immutableKeys = []string{"id", "userId", "createdAt"}

// Binding describes how HTTP maps onto one kind. C is the create DTO.
type Binding[T any, F any, C any] struct {
	// Name is used in error messages, e.g. "Customer not found".
	Name string
	// Build turns a validated create DTO into a row owned by ownerID.
	Build func(dto *C, ownerID int64) T
	// Filter parses list query parameters; nil lists without filters.
	Filter func(h *transport.BaseHandler, r *http.Request) (F, *internal.AppError)
	// Immutable lists extra keys stripped from update bodies.
	Immutable []string
}

type Handler[T any, F any, C any] struct {
	*transport.BaseHandler
	service *Service[T, F]
	binding Binding[T, F, C]
}

func NewHandler[T any, F any, C any](base *transport.BaseHandler, service *Service[T, F], binding Binding[T, F, C]) *Handler[T, F, C] {
	return &Handler[T, F, C]{
		BaseHandler: base,
		service:     service,
		binding:     binding,
	}
}

// Routes mounts the collection at / and single records at /{id}.
func (h *Handler[T, F, C]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler[T, F, C]) List(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	var filter F
	if h.binding.Filter != nil {
		var appErr *internal.AppError
		if filter, appErr = h.binding.Filter(h.BaseHandler, r); appErr != nil {
			h.WriteAppError(w, appErr)
			return
		}
	}

	records, err := h.service.List(r.Context(), user.ID, filter)
	if err != nil {
		h.HandleServiceError(w, err, h.binding.Name)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler[T, F, C]) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	id, appErr := h.PathID(r, "id", h.binding.Name)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	rec, err := h.service.Get(r.Context(), user.ID, id)
	if err != nil {
		h.HandleServiceError(w, err, h.binding.Name)
		return
	}
	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler[T, F, C]) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	var dto C
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	created, err := h.CreateFor(r, user.ID, &dto)
	if err != nil {
		h.HandleServiceError(w, err, h.binding.Name)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

// CreateFor builds and stores a record from an already validated DTO.
func (h *Handler[T, F, C]) CreateFor(r *http.Request, ownerID int64, dto *C) (T, error) {
	return h.service.Create(r.Context(), ownerID, h.binding.Build(dto, ownerID))
}

func (h *Handler[T, F, C]) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	id, appErr := h.PathID(r, "id", h.binding.Name)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var patch storage.Patch
	if appErr := validation.Decode(r.Body, &patch); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	patch = patch.Without(slices.Concat(immutableKeys, h.binding.Immutable)...)

	updated, err := h.service.Update(r.Context(), user.ID, id, patch)
	if err != nil {
		h.HandleServiceError(w, err, h.binding.Name)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler[T, F, C]) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	id, appErr := h.PathID(r, "id", h.binding.Name)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, id); err != nil {
		h.HandleServiceError(w, err, h.binding.Name)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
