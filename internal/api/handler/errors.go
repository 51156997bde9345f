package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mcdev12/keeperleague/internal/api/middleware"
	"github.com/mcdev12/keeperleague/internal/api/response"
	"github.com/mcdev12/keeperleague/internal/draft"
	"github.com/mcdev12/keeperleague/internal/draftorder"
	"github.com/mcdev12/keeperleague/internal/keeper"
	"github.com/mcdev12/keeperleague/internal/leagues"
	"github.com/mcdev12/keeperleague/internal/players"
	"github.com/mcdev12/keeperleague/internal/teams"
	"github.com/rs/zerolog/log"
)

// writeError maps an application error onto the envelope. Validation and
// not-found errors surface their messages; anything else is treated as a
// storage failure and answered with a generic message so internals never
// leak past the boundary.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *keeper.ValidationError
	var dverr *draft.ValidationError
	switch {
	case errors.As(err, &verr):
		details := map[string]any{}
		if len(verr.PlayerIDs) > 0 {
			details["player_ids"] = verr.PlayerIDs
		}
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, response.CodeValidationFailed, verr.Reason, details)
	case errors.As(err, &dverr):
		response.Err(w, http.StatusUnprocessableEntity, response.CodeValidationFailed, dverr.Reason)
	case errors.Is(err, draftorder.ErrInvalidArgument):
		response.Err(w, http.StatusBadRequest, response.CodeInvalidArgument, err.Error())
	case errors.Is(err, leagues.ErrLeagueNotFound),
		errors.Is(err, teams.ErrTeamNotFound),
		errors.Is(err, players.ErrPlayerNotFound),
		errors.Is(err, draft.ErrPickNotFound):
		response.Err(w, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, draft.ErrPickAlreadyComplete):
		response.Err(w, http.StatusConflict, response.CodeConflict, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.Err(w, http.StatusInternalServerError, response.CodeStorageError, "operation could not be completed")
	}
}

// pathUUID parses a chi URL parameter as a UUID, answering 400 itself on
// failure. The bool reports whether the caller should continue.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidArgument, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
