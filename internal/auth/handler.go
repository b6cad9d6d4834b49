package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	CookieSecure bool
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, cookieSecure bool) *Handler {
	return &Handler{
		BaseHandler:  base,
		Service:      svc,
		CookieSecure: cookieSecure,
	}
}

// PublicRoutes are reachable without a session.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

// Routes require AuthMiddleware in front.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/logout", h.Logout)
	r.Get("/user", h.CurrentUser)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	result, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			h.WriteAppError(w, internal.ErrUsernameTaken())
			return
		}
		h.HandleServiceError(w, err, "User")
		return
	}

	h.setSessionCookie(w, result.Token, result.ExpiresAt)
	h.WriteJSON(w, http.StatusCreated, result.ToResponse())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	result, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.WriteAppError(w, internal.ErrInvalidCredentials())
			return
		}
		h.HandleServiceError(w, err, "User")
		return
	}

	h.setSessionCookie(w, result.Token, result.ExpiresAt)
	h.WriteJSON(w, http.StatusOK, result.ToResponse())
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	if err := h.Service.Logout(r.Context(), user.SessionID); err != nil {
		h.HandleServiceError(w, err, "Session")
		return
	}

	h.setSessionCookie(w, "", time.Unix(0, 0))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	u, err := h.Service.CurrentUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The account behind a live session is gone.
			h.WriteAppError(w, internal.ErrUnauthenticated())
			return
		}
		h.HandleServiceError(w, err, "User")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// AuthMiddleware accepts a Bearer token or the session cookie and puts the
// caller in the request context. Anything else is a 401.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.tokenFromRequest(r)
		if token == "" {
			h.WriteAppError(w, internal.ErrUnauthenticated())
			return
		}

		user, err := h.Service.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				h.WriteAppError(w, internal.NewUnauthorizedError("Token expired", internal.ErrCodeTokenExpired))
			case errors.Is(err, ErrSessionExpired):
				h.WriteAppError(w, internal.NewUnauthorizedError("Session expired", internal.ErrCodeSessionExpired))
			case errors.Is(err, ErrInvalidToken):
				h.WriteAppError(w, internal.NewUnauthorizedError("Invalid token", internal.ErrCodeInvalidToken))
			default:
				h.HandleServiceError(w, err, "Session")
			}
			return
		}

		ctx := internal.ContextWithUser(r.Context(), user)
		ctx = logger.With(ctx, "user_id", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) tokenFromRequest(r *http.Request) string {
	if token := h.ExtractTokenFromHeader(r); token != "" {
		return token
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
