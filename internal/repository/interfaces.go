package repository

import (
	"context"

	"github.com/ucan-lab/hado-ken/internal/domain"
)

// TeamRepository defines the interface for team directory reads
type TeamRepository interface {
	// ListTeams retrieves every team in the directory
	ListTeams(ctx context.Context) ([]domain.Team, error)
}

// TournamentRepository defines the interface for tournament calendar reads
type TournamentRepository interface {
	// ListTournaments retrieves every tournament in the calendar
	ListTournaments(ctx context.Context) ([]domain.Tournament, error)
}

// VoteRepository defines the interface for vote ledger operations
type VoteRepository interface {
	// ListByVoter retrieves all live votes for a participant in a tournament.
	// The invariant says at most one should exist; stale duplicates are
	// still returned so callers can observe them.
	ListByVoter(ctx context.Context, name, tournamentID string) ([]domain.Vote, error)

	// ListByTournament retrieves all votes for a tournament in submission
	// order (vote_at ascending)
	ListByTournament(ctx context.Context, tournamentID string) ([]domain.Vote, error)

	// Replace deletes every live vote for (vote.Name, vote.TournamentID) and
	// inserts vote as the single replacement, assigning vote.ID and
	// vote.CreatedAt. Both steps run in one transaction.
	Replace(ctx context.Context, vote *domain.Vote) error
}
