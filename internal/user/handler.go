package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bizmanager/internal"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

type ServiceAPI interface {
	UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*userDatamodel.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Put("/profile", h.UpdateProfile)
	r.Put("/change-password", h.ChangePassword)
}

// UpdateProfile handles PUT /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	var dto UpdateProfileDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	u, err := h.Service.UpdateProfile(r.Context(), user.ID, dto)
	if errors.Is(err, storage.ErrNotFound) {
		// The account was removed while its session was still live.
		h.WriteAppError(w, internal.ErrUserNotFound())
		return
	}
	if err != nil {
		h.HandleServiceError(w, err, "User")
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// ChangePassword handles PUT /change-password. The body is validated but the
// password is left as is.
// TODO: verify currentPassword and store the new hash once clients send both.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if _, ok := internal.UserFromContext(r.Context()); !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	var dto ChangePasswordDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Password change request received"})
}
