package handler

import (
	"net/http"

	"github.com/mcdev12/keeperleague/internal/api/response"
	"github.com/mcdev12/keeperleague/internal/availability"
	"github.com/mcdev12/keeperleague/internal/models"
)

// AvailabilityHandler exposes the league's live candidate pool.
type AvailabilityHandler struct {
	app *availability.App
}

func NewAvailabilityHandler(app *availability.App) *AvailabilityHandler {
	return &AvailabilityHandler{app: app}
}

// GetAvailablePlayers handles GET /leagues/{leagueID}/available-players.
// The result is a point-in-time snapshot, not a reservation.
func (h *AvailabilityHandler) GetAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}

	players, err := h.app.GetAvailablePlayers(r.Context(), leagueID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if players == nil {
		players = []models.Player{}
	}
	response.Success(w, http.StatusOK, players)
}

// CheckPlayer handles GET /leagues/{leagueID}/available-players/{playerID}.
func (h *AvailabilityHandler) CheckPlayer(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	playerID, ok := pathUUID(w, r, "playerID")
	if !ok {
		return
	}

	available, err := h.app.IsPlayerAvailable(r.Context(), leagueID, playerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, map[string]bool{"available": available})
}

// ListInconsistencies handles GET /leagues/{leagueID}/inconsistencies. It is
// an operator endpoint: any overlap between the drafted and keeper sets is
// answered as an INCONSISTENT_STATE error naming the affected players, since
// it means the underlying data needs repair.
func (h *AvailabilityHandler) ListInconsistencies(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}

	found, err := h.app.FindInconsistencies(r.Context(), leagueID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(found) > 0 {
		response.ErrWithDetails(w, http.StatusConflict, response.CodeInconsistentState,
			"players found in both the drafted set and the keeper set",
			map[string]any{"inconsistencies": found})
		return
	}
	response.Success(w, http.StatusOK, []availability.Inconsistency{})
}
