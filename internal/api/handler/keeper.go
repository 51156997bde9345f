package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcdev12/keeperleague/internal/api/response"
	"github.com/mcdev12/keeperleague/internal/keeper"
)

// saveKeepersRequest is the request body for PUT keepers. The selections
// replace the team's previous keeper set entirely.
type saveKeepersRequest struct {
	Selections []keeper.Selection `json:"selections"`
}

// KeeperHandler exposes the keeper selection workflow.
type KeeperHandler struct {
	app *keeper.App
}

func NewKeeperHandler(app *keeper.App) *KeeperHandler {
	return &KeeperHandler{app: app}
}

// GetPotentialKeepers handles GET /leagues/{leagueID}/teams/{teamID}/potential-keepers.
func (h *KeeperHandler) GetPotentialKeepers(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	teamID, ok := pathUUID(w, r, "teamID")
	if !ok {
		return
	}

	players, err := h.app.GetPotentialKeepers(r.Context(), teamID, leagueID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, players)
}

// GetKeepers handles GET /leagues/{leagueID}/teams/{teamID}/keepers.
func (h *KeeperHandler) GetKeepers(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	teamID, ok := pathUUID(w, r, "teamID")
	if !ok {
		return
	}

	keepers, err := h.app.GetKeepers(r.Context(), teamID, leagueID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, keepers)
}

// SaveKeepers handles PUT /leagues/{leagueID}/teams/{teamID}/keepers.
func (h *KeeperHandler) SaveKeepers(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	teamID, ok := pathUUID(w, r, "teamID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req saveKeepersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidArgument, "invalid request body")
		return
	}

	if err := h.app.SaveKeepers(r.Context(), teamID, leagueID, req.Selections); err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, map[string]int{"saved": len(req.Selections)})
}
