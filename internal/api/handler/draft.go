package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mcdev12/keeperleague/internal/api/response"
	"github.com/mcdev12/keeperleague/internal/draft"
)

// makePickRequest is the request body for making a pick. The league comes
// from the URL; team identity is always explicit in the body.
type makePickRequest struct {
	OverallPick int       `json:"overall_pick"`
	TeamID      uuid.UUID `json:"team_id"`
	PlayerID    uuid.UUID `json:"player_id"`
}

// DraftHandler exposes the draft pick grid and lifecycle.
type DraftHandler struct {
	app *draft.App
}

func NewDraftHandler(app *draft.App) *DraftHandler {
	return &DraftHandler{app: app}
}

// PrepopulatePicks handles POST /leagues/{leagueID}/draft/picks.
func (h *DraftHandler) PrepopulatePicks(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}

	if err := h.app.PrepopulateDraftPicks(r.Context(), leagueID); err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusCreated, map[string]string{"league_id": leagueID.String()})
}

// ListPicks handles GET /leagues/{leagueID}/draft/picks. An optional round
// query parameter narrows the result to one round.
func (h *DraftHandler) ListPicks(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}

	round := 0
	if raw := r.URL.Query().Get("round"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Err(w, http.StatusBadRequest, response.CodeInvalidArgument, "round must be a positive integer")
			return
		}
		round = parsed
	}

	picks, err := h.app.ListDraftPicks(r.Context(), leagueID, round)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, picks)
}

// DescribePick handles GET /leagues/{leagueID}/draft/picks/{overall}.
func (h *DraftHandler) DescribePick(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	overall, err := strconv.Atoi(chi.URLParam(r, "overall"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidArgument, "invalid overall pick number")
		return
	}

	label, err := h.app.DescribePick(r.Context(), leagueID, overall)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, label)
}

// MakePick handles POST /leagues/{leagueID}/draft/pick.
func (h *DraftHandler) MakePick(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req makePickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidArgument, "invalid request body")
		return
	}
	if req.TeamID == uuid.Nil || req.PlayerID == uuid.Nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidArgument, "team_id and player_id are required")
		return
	}

	if err := h.app.MakePick(r.Context(), draft.MakePickRequest{
		LeagueID:    leagueID,
		OverallPick: req.OverallPick,
		TeamID:      req.TeamID,
		PlayerID:    req.PlayerID,
	}); err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, map[string]int{"overall_pick": req.OverallPick})
}

// StartDraft handles POST /leagues/{leagueID}/draft/start.
func (h *DraftHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.app.StartDraft)
}

// CancelDraft handles POST /leagues/{leagueID}/draft/cancel.
func (h *DraftHandler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.app.CancelDraft)
}

func (h *DraftHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, leagueID uuid.UUID) error) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	if err := fn(r.Context(), leagueID); err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, http.StatusOK, map[string]string{"league_id": leagueID.String()})
}
