// Package api wires handlers, middleware, and routes into one chi router.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mcdev12/keeperleague/internal/api/handler"
	"github.com/mcdev12/keeperleague/internal/api/middleware"
	"github.com/mcdev12/keeperleague/internal/availability"
	"github.com/mcdev12/keeperleague/internal/draft"
	"github.com/mcdev12/keeperleague/internal/keeper"
)

// RouterDeps holds everything the router needs.
type RouterDeps struct {
	KeeperApp       *keeper.App
	DraftApp        *draft.App
	AvailabilityApp *availability.App
	DBPinger        handler.DBPinger
	Version         string
}

// NewRouter builds the service's route tree. Every endpoint answers with the
// standard envelope; RequestID and Recovery wrap everything.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	keeperHandler := handler.NewKeeperHandler(deps.KeeperApp)
	draftHandler := handler.NewDraftHandler(deps.DraftApp)
	availabilityHandler := handler.NewAvailabilityHandler(deps.AvailabilityApp)

	r.Route("/leagues/{leagueID}", func(r chi.Router) {
		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Get("/potential-keepers", keeperHandler.GetPotentialKeepers)
			r.Get("/keepers", keeperHandler.GetKeepers)
			r.Put("/keepers", keeperHandler.SaveKeepers)
		})

		r.Get("/available-players", availabilityHandler.GetAvailablePlayers)
		r.Get("/available-players/{playerID}", availabilityHandler.CheckPlayer)
		r.Get("/inconsistencies", availabilityHandler.ListInconsistencies)

		r.Route("/draft", func(r chi.Router) {
			r.Post("/picks", draftHandler.PrepopulatePicks)
			r.Get("/picks", draftHandler.ListPicks)
			r.Get("/picks/{overall}", draftHandler.DescribePick)
			r.Post("/pick", draftHandler.MakePick)
			r.Post("/start", draftHandler.StartDraft)
			r.Post("/cancel", draftHandler.CancelDraft)
		})
	})

	return r
}
