// Package availability computes the set of players still eligible to be
// drafted in a league: the ACTIVE catalog minus the union of already-drafted
// players and keeper selections.
package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/keeperleague/internal/models"
	"github.com/mcdev12/keeperleague/internal/players"
	"github.com/rs/zerolog/log"
)

// Snapshot holds the two exclusion sources for one league, read at a single
// point in time. Callers must treat derived availability as a snapshot, never
// a live guarantee.
type Snapshot struct {
	DraftedPlayerIDs []uuid.UUID
	KeeperPlayerIDs  []uuid.UUID
}

// SnapshotRepository reads both exclusion sources within one read
// transaction so a player cannot appear drafted in one list and absent from
// the other because of interleaved writes.
type SnapshotRepository interface {
	ExclusionSnapshot(ctx context.Context, leagueID uuid.UUID) (*Snapshot, error)
}

// PlayerRepository defines what the resolver needs from the player catalog.
type PlayerRepository interface {
	FindPlayers(ctx context.Context, filter players.Filter) ([]models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// LeagueRepository defines what the resolver needs from the leagues store.
type LeagueRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
}

// Inconsistency reports a player present in both the drafted set and the
// keeper set. That state indicates upstream data corruption; it is surfaced
// to an operator, never silently reconciled.
type Inconsistency struct {
	LeagueID uuid.UUID `json:"league_id"`
	PlayerID uuid.UUID `json:"player_id"`
}

// App resolves player availability for a league.
type App struct {
	snapshots SnapshotRepository
	players   PlayerRepository
	leagues   LeagueRepository
}

func NewApp(snapshots SnapshotRepository, players PlayerRepository, leagues LeagueRepository) *App {
	return &App{
		snapshots: snapshots,
		players:   players,
		leagues:   leagues,
	}
}

// GetAvailablePlayers returns every ACTIVE catalog player not yet drafted and
// not locked in as a keeper for the league. A player present in both
// exclusion sources is excluded once; the overlap itself is logged as an
// inconsistency but does not fail the read.
func (a *App) GetAvailablePlayers(ctx context.Context, leagueID uuid.UUID) ([]models.Player, error) {
	if _, err := a.leagues.GetLeague(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("league not found: %w", err)
	}

	snap, err := a.snapshots.ExclusionSnapshot(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusion snapshot: %w", err)
	}

	exclude := unionExclusions(leagueID, snap, true)

	available, err := a.players.FindPlayers(ctx, players.Filter{
		Status:     models.PlayerStatusActive,
		ExcludeIDs: exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find available players: %w", err)
	}

	return available, nil
}

// IsPlayerAvailable reports whether a single player is in the league's live
// candidate pool. Used by the pick path to reject drafting excluded players.
func (a *App) IsPlayerAvailable(ctx context.Context, leagueID, playerID uuid.UUID) (bool, error) {
	snap, err := a.snapshots.ExclusionSnapshot(ctx, leagueID)
	if err != nil {
		return false, fmt.Errorf("failed to read exclusion snapshot: %w", err)
	}
	for _, id := range snap.DraftedPlayerIDs {
		if id == playerID {
			return false, nil
		}
	}
	for _, id := range snap.KeeperPlayerIDs {
		if id == playerID {
			return false, nil
		}
	}

	player, err := a.players.GetPlayer(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to get player: %w", err)
	}
	return player.Status == models.PlayerStatusActive, nil
}

// FindInconsistencies returns every player found in both the drafted set and
// the keeper set for the league. A non-empty result means upstream data
// corruption that an operator needs to look at.
func (a *App) FindInconsistencies(ctx context.Context, leagueID uuid.UUID) ([]Inconsistency, error) {
	if _, err := a.leagues.GetLeague(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("league not found: %w", err)
	}

	snap, err := a.snapshots.ExclusionSnapshot(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusion snapshot: %w", err)
	}

	var found []Inconsistency
	drafted := make(map[uuid.UUID]struct{}, len(snap.DraftedPlayerIDs))
	for _, id := range snap.DraftedPlayerIDs {
		drafted[id] = struct{}{}
	}
	for _, id := range snap.KeeperPlayerIDs {
		if _, ok := drafted[id]; ok {
			found = append(found, Inconsistency{LeagueID: leagueID, PlayerID: id})
		}
	}
	return found, nil
}

// unionExclusions collapses the two sources into one set. Overlap between
// them is an invariant violation (a keeper must never also be a completed
// pick) and gets logged when logOverlap is set.
func unionExclusions(leagueID uuid.UUID, snap *Snapshot, logOverlap bool) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(snap.DraftedPlayerIDs)+len(snap.KeeperPlayerIDs))
	exclude := make([]uuid.UUID, 0, len(snap.DraftedPlayerIDs)+len(snap.KeeperPlayerIDs))

	for _, id := range snap.DraftedPlayerIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		exclude = append(exclude, id)
	}
	for _, id := range snap.KeeperPlayerIDs {
		if _, ok := seen[id]; ok {
			if logOverlap {
				log.Error().
					Str("league_id", leagueID.String()).
					Str("player_id", id.String()).
					Msg("player is both drafted and a keeper; upstream data is corrupt")
			}
			continue
		}
		seen[id] = struct{}{}
		exclude = append(exclude, id)
	}

	return exclude
}
