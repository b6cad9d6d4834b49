package hr

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/core/common/validation"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

// TeamRosterHandler serves the members nested under a team,
// /teams/{teamId}/members. The team must belong to the caller.
type TeamRosterHandler struct {
	*transport.BaseHandler
	teams   *TeamService
	members *TeamMemberService
	handler *TeamMemberHandler
}

func NewTeamRosterHandler(base *transport.BaseHandler, teams *TeamService, members *TeamMemberService, handler *TeamMemberHandler) *TeamRosterHandler {
	return &TeamRosterHandler{
		BaseHandler: base,
		teams:       teams,
		members:     members,
		handler:     handler,
	}
}

func (h *TeamRosterHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

func (h *TeamRosterHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	teamID, appErr := h.PathID(r, "teamId", "Team")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	if _, err := h.teams.Get(r.Context(), user.ID, teamID); err != nil {
		h.HandleServiceError(w, err, "Team")
		return
	}

	members, err := h.members.List(r.Context(), user.ID, TeamMemberFilter{TeamID: teamID})
	if err != nil {
		h.HandleServiceError(w, err, "Team member")
		return
	}
	h.WriteJSON(w, http.StatusOK, members)
}

func (h *TeamRosterHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated())
		return
	}

	teamID, appErr := h.PathID(r, "teamId", "Team")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var dto CreateTeamMemberDTO
	if appErr := validation.Decode(r.Body, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	dto.TeamID = teamID
	if appErr := validation.Struct(dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	member, err := h.handler.CreateFor(r, user.ID, &dto)
	if err != nil {
		h.HandleServiceError(w, err, "Team")
		return
	}
	h.WriteJSON(w, http.StatusCreated, member)
}
