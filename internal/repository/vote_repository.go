package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/pkg/database"
)

type PostgresVoteRepository struct {
	db *database.PostgresDB
}

func NewVoteRepository(db *database.PostgresDB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// ListByVoter retrieves all live votes for a participant in a tournament
func (r *PostgresVoteRepository) ListByVoter(ctx context.Context, name, tournamentID string) ([]domain.Vote, error) {
	query := `
		SELECT id, name, first_team, second_team, third_team, vote_at, tournament_id, created_at
		FROM votes
		WHERE name = $1 AND tournament_id = $2
	`

	rows, err := r.db.Pool.Query(ctx, query, name, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes by voter: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

// ListByTournament retrieves all votes for a tournament ordered by vote_at
// ascending, i.e. submission order
func (r *PostgresVoteRepository) ListByTournament(ctx context.Context, tournamentID string) ([]domain.Vote, error) {
	query := `
		SELECT id, name, first_team, second_team, third_team, vote_at, tournament_id, created_at
		FROM votes
		WHERE tournament_id = $1
		ORDER BY vote_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes by tournament: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

// Replace removes every live vote for (vote.Name, vote.TournamentID) and
// inserts vote as the single replacement. Delete and insert run in one
// transaction so a failure between the two cannot leave the participant
// with zero votes. The ID is assigned by the store.
func (r *PostgresVoteRepository) Replace(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `
		DELETE FROM votes
		WHERE name = $1 AND tournament_id = $2
	`
	if _, err := tx.Exec(ctx, deleteQuery, vote.Name, vote.TournamentID); err != nil {
		return fmt.Errorf("failed to delete previous votes: %w", err)
	}

	insertQuery := `
		INSERT INTO votes (name, first_team, second_team, third_team, vote_at, tournament_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, insertQuery,
		vote.Name,
		vote.First,
		vote.Second,
		vote.Third,
		vote.VoteAt,
		vote.TournamentID,
	).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit vote replacement: %w", err)
	}

	return nil
}

func scanVotes(rows pgx.Rows) ([]domain.Vote, error) {
	var votes []domain.Vote
	for rows.Next() {
		var vote domain.Vote
		err := rows.Scan(
			&vote.ID,
			&vote.Name,
			&vote.First,
			&vote.Second,
			&vote.Third,
			&vote.VoteAt,
			&vote.TournamentID,
			&vote.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return votes, nil
}
