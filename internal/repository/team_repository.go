package repository

import (
	"context"
	"fmt"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/pkg/database"
)

type PostgresTeamRepository struct {
	db *database.PostgresDB
}

func NewTeamRepository(db *database.PostgresDB) *PostgresTeamRepository {
	return &PostgresTeamRepository{db: db}
}

// ListTeams retrieves every team in the directory. Ordering is left to the
// caller; the directory view sorts by hrp descending after fetch.
func (r *PostgresTeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	query := `
		SELECT id, name, icon_path, hrp
		FROM teams
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.IconPath, &team.HRP); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	return teams, nil
}
