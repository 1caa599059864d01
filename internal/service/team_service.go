package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/internal/repository"
)

type TeamService struct {
	teamRepo        repository.TeamRepository
	cache           *CacheService
	iconBaseURL     string
	iconPlaceholder string
	logger          *zap.Logger
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	cache *CacheService,
	iconBaseURL string,
	iconPlaceholder string,
	logger *zap.Logger,
) *TeamService {
	return &TeamService{
		teamRepo:        teamRepo,
		cache:           cache,
		iconBaseURL:     iconBaseURL,
		iconPlaceholder: iconPlaceholder,
		logger:          logger,
	}
}

// ListTeams returns the directory view: every team sorted by hrp descending
// with icons resolved to fetchable URLs
func (s *TeamService) ListTeams(ctx context.Context) ([]domain.TeamView, error) {
	teams, err := s.cache.GetTeamsWithCache(ctx, s.teamRepo.ListTeams)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	// The store has no ordering support; sort after fetch
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].HRP > teams[j].HRP })

	views := make([]domain.TeamView, 0, len(teams))
	for _, team := range teams {
		views = append(views, domain.TeamView{
			Team:    team,
			IconURL: s.cache.GetIconURLWithCache(ctx, team.IconPath, s.resolveIconURL),
		})
	}

	return views, nil
}

// TeamNamesByID returns a lookup table from team ID to display name
func (s *TeamService) TeamNamesByID(ctx context.Context) (map[string]string, error) {
	teams, err := s.cache.GetTeamsWithCache(ctx, s.teamRepo.ListTeams)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	names := make(map[string]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}
	return names, nil
}

// resolveIconURL maps a storage path to a fetchable URL. An empty path
// resolves to the placeholder image.
func (s *TeamService) resolveIconURL(iconPath string) string {
	if iconPath == "" {
		return s.iconPlaceholder
	}
	if s.iconBaseURL == "" {
		return iconPath
	}
	return strings.TrimSuffix(s.iconBaseURL, "/") + "/" + strings.TrimPrefix(iconPath, "/")
}
