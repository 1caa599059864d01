package repository

import (
	"context"
	"fmt"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/pkg/database"
)

type PostgresTournamentRepository struct {
	db *database.PostgresDB
}

func NewTournamentRepository(db *database.PostgresDB) *PostgresTournamentRepository {
	return &PostgresTournamentRepository{db: db}
}

// ListTournaments retrieves every tournament in the calendar. The today
// match is computed by the eligibility gate, not in the store.
func (r *PostgresTournamentRepository) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	query := `
		SELECT id, name, game_date
		FROM tournaments
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []domain.Tournament
	for rows.Next() {
		var tournament domain.Tournament
		if err := rows.Scan(&tournament.ID, &tournament.Name, &tournament.GameDate); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, tournament)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tournaments: %w", err)
	}

	return tournaments, nil
}
