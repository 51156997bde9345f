package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/keeperleague/internal/availability"
	"github.com/mcdev12/keeperleague/internal/config"
	"github.com/mcdev12/keeperleague/internal/draft"
	"github.com/mcdev12/keeperleague/internal/keeper"
	"github.com/mcdev12/keeperleague/internal/leagues"
	"github.com/mcdev12/keeperleague/internal/players"
	"github.com/mcdev12/keeperleague/internal/roster"
	"github.com/mcdev12/keeperleague/internal/teams"
)

type Services struct {
	Keeper       *keeper.App
	Draft        *draft.App
	Availability *availability.App
}

// setupServices wires the dependency chain: pool, repositories, apps.
func setupServices(pool *pgxpool.Pool, cfg *config.Config) *Services {
	clock := clockwork.NewRealClock()

	leagueRepo := leagues.NewRepository(pool)
	teamRepo := teams.NewRepository(pool)
	playerRepo := players.NewRepository(pool)
	rosterRepo := roster.NewRepository(pool)
	pickRepo := draft.NewRepository(pool)
	snapshotRepo := availability.NewRepository(pool)

	availabilityApp := availability.NewApp(snapshotRepo, playerRepo, leagueRepo)

	keeperApp := keeper.NewApp(rosterRepo, playerRepo, leagueRepo, teamRepo, clock, keeper.Rules{
		MaxKeepersPerTeam: cfg.Keeper.MaxKeepersPerTeam,
		MaxKeeperYears:    cfg.Keeper.MaxKeeperYears,
	})

	draftApp := draft.NewApp(pickRepo, leagueRepo, availabilityApp, clock)

	return &Services{
		Keeper:       keeperApp,
		Draft:        draftApp,
		Availability: availabilityApp,
	}
}
