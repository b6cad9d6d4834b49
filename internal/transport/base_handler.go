package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/core/common/validation"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a plain error response for the given status.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	errType := internal.ErrorTypeInternal
	code := internal.ErrCodeInternal
	switch status {
	case http.StatusBadRequest:
		errType, code = internal.ErrorTypeValidation, internal.ErrCodeValidationFailed
	case http.StatusUnauthorized:
		errType, code = internal.ErrorTypeUnauthorized, internal.ErrCodeUnauthenticated
	case http.StatusNotFound:
		errType, code = internal.ErrorTypeNotFound, internal.ErrCodeResourceNotFound
	case http.StatusConflict:
		errType, code = internal.ErrorTypeConflict, internal.ErrCodeResourceConflict
	case http.StatusRequestEntityTooLarge:
		errType, code = internal.ErrorTypeTooLarge, internal.ErrCodeBodyTooLarge
	case http.StatusTooManyRequests:
		errType, code = internal.ErrorTypeRateLimited, internal.ErrCodeRateLimited
	}
	h.WriteAppError(w, &internal.AppError{Type: errType, Code: code, Message: message, StatusCode: status})
}

// WriteAppError renders an AppError in the standard envelope.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *internal.AppError) {
	if appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", appErr.StatusCode, "code", appErr.Code, "error", appErr.Error())
	} else {
		h.Logger.Debug("http error", "status", appErr.StatusCode, "code", appErr.Code, "message", appErr.GetDetailedMessage())
	}
	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps service and storage errors onto HTTP responses.
// Unknown errors become a 500 without leaking the cause.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error, resource string) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.WriteAppError(w, internal.ErrResourceNotFound(resource))
	case errors.Is(err, storage.ErrInvalidPatch):
		h.WriteAppError(w, internal.NewValidationError(invalidPatchMessage(err), internal.ErrCodeInvalidType))
	case errors.Is(err, storage.ErrConflict):
		h.WriteAppError(w, internal.NewConflictError(resource+" already exists", internal.ErrCodeResourceConflict))
	default:
		h.WriteAppError(w, internal.NewInternalError("Internal server error", err))
	}
}

func invalidPatchMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), storage.ErrInvalidPatch.Error()+": ")
	return "invalid update: " + msg
}

// DecodeJSON decodes the request body into dto and runs its validate tags.
func (h *BaseHandler) DecodeJSON(r *http.Request, dto interface{}) *internal.AppError {
	if appErr := validation.Decode(r.Body, dto); appErr != nil {
		return appErr
	}
	return validation.Struct(dto)
}

// PathID parses an integer URL parameter. An unparsable id can never name a
// record, so it is reported as not found.
func (h *BaseHandler) PathID(r *http.Request, param, resource string) (int64, *internal.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.ErrResourceNotFound(resource)
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter.
func (h *BaseHandler) QueryInt(r *http.Request, name string) (*int64, *internal.AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, internal.NewValidationFieldError(name, name+" must be an integer", internal.ErrCodeInvalidQuery)
	}
	return &v, nil
}

// QueryString returns an optional string query parameter.
func (h *BaseHandler) QueryString(r *http.Request, name string) *string {
	if raw := r.URL.Query().Get(name); raw != "" {
		return &raw
	}
	return nil
}

// QueryLimit reads ?limit=, falling back to def when absent or outside 1..max.
func (h *BaseHandler) QueryLimit(r *http.Request, def, max int) int {
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= max {
		return l
	}
	return def
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
