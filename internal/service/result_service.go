package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/internal/repository"
)

type ResultService struct {
	voteRepo    repository.VoteRepository
	teamService *TeamService
	voting      *VotingService
	logger      *zap.Logger
}

func NewResultService(
	voteRepo repository.VoteRepository,
	teamService *TeamService,
	voting *VotingService,
	logger *zap.Logger,
) *ResultService {
	return &ResultService{
		voteRepo:    voteRepo,
		teamService: teamService,
		voting:      voting,
		logger:      logger,
	}
}

// Results returns the gated results view. Predictions stay hidden until the
// deadline has passed on a tournament day; after that they are listed in
// submission order with team IDs resolved to display names.
func (s *ResultService) Results(ctx context.Context) (*domain.ResultsView, error) {
	eligibility, err := s.voting.Eligibility(ctx)
	if err != nil {
		return nil, err
	}

	if !eligibility.IsTournamentDay {
		return &domain.ResultsView{
			IsTournamentDay: false,
			ResultsVisible:  false,
			Message:         "本日は大会がありません。",
			Predictions:     []domain.Prediction{},
		}, nil
	}

	tournament := eligibility.ActiveTournament

	if eligibility.IsBeforeDeadline {
		return &domain.ResultsView{
			IsTournamentDay: true,
			ResultsVisible:  false,
			Tournament:      tournament,
			Message:         fmt.Sprintf("投票結果は %s 以降に表示されます。", s.voting.Deadline()),
			Predictions:     []domain.Prediction{},
		}, nil
	}

	votes, err := s.voteRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	teamNames, err := s.teamService.TeamNamesByID(ctx)
	if err != nil {
		return nil, err
	}

	predictions := make([]domain.Prediction, 0, len(votes))
	for _, vote := range votes {
		predictions = append(predictions, domain.Prediction{
			Name:   vote.Name,
			First:  resolveTeamName(teamNames, vote.First),
			Second: resolveTeamName(teamNames, vote.Second),
			Third:  resolveTeamName(teamNames, vote.Third),
			VoteAt: vote.VoteAt,
		})
	}

	s.logger.Debug("Results assembled",
		zap.String("tournament_id", tournament.ID),
		zap.Int("predictions", len(predictions)))

	return &domain.ResultsView{
		IsTournamentDay: true,
		ResultsVisible:  true,
		Tournament:      tournament,
		Predictions:     predictions,
	}, nil
}

// resolveTeamName renders unresolved team IDs as a sentinel label instead
// of failing the whole view
func resolveTeamName(teamNames map[string]string, teamID string) string {
	if name, ok := teamNames[teamID]; ok {
		return name
	}
	return domain.UnknownTeamName
}
