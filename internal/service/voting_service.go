package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/internal/repository"
)

type VotingService struct {
	voteRepo       repository.VoteRepository
	tournamentRepo repository.TournamentRepository
	cache          *CacheService
	location       *time.Location
	deadline       Deadline
	logger         *zap.Logger
	now            func() time.Time
}

func NewVotingService(
	voteRepo repository.VoteRepository,
	tournamentRepo repository.TournamentRepository,
	cache *CacheService,
	location *time.Location,
	deadline Deadline,
	logger *zap.Logger,
) *VotingService {
	return &VotingService{
		voteRepo:       voteRepo,
		tournamentRepo: tournamentRepo,
		cache:          cache,
		location:       location,
		deadline:       deadline,
		logger:         logger,
		now:            time.Now,
	}
}

// Deadline returns the daily submission cutoff
func (s *VotingService) Deadline() Deadline {
	return s.deadline
}

// WithClock overrides the time source. Eligibility is time-dependent, so
// tests pin the clock instead of racing the real one.
func (s *VotingService) WithClock(now func() time.Time) *VotingService {
	s.now = now
	return s
}

// Eligibility fetches the calendar snapshot and evaluates the voting window
// for the current instant. Called fresh on every request; only the calendar
// snapshot behind it is cached.
func (s *VotingService) Eligibility(ctx context.Context) (domain.Eligibility, error) {
	tournaments, err := s.cache.GetTournamentsWithCache(ctx, s.tournamentRepo.ListTournaments)
	if err != nil {
		return domain.Eligibility{}, fmt.Errorf("failed to load tournament calendar: %w", err)
	}

	return EvaluateEligibility(s.now().In(s.location), tournaments, s.deadline)
}

// GetVotingStatus returns the public eligibility snapshot for the ballot page
func (s *VotingService) GetVotingStatus(ctx context.Context) (*domain.VotingStatus, error) {
	eligibility, err := s.Eligibility(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.VotingStatus{
		IsTournamentDay:  eligibility.IsTournamentDay,
		IsBeforeDeadline: eligibility.IsBeforeDeadline,
		AcceptingVotes:   eligibility.AcceptingVotes(),
		Tournament:       eligibility.ActiveTournament,
		Deadline:         s.deadline.String(),
	}, nil
}

// SubmitVote validates and persists a ranked prediction. Preconditions are
// checked in order, first failure wins, and nothing is written unless all
// pass. Resubmission by the same participant for the same tournament
// replaces the previous vote.
func (s *VotingService) SubmitVote(ctx context.Context, req *domain.VoteRequest) (*domain.VoteResponse, error) {
	eligibility, err := s.Eligibility(ctx)
	if err != nil {
		return nil, err
	}
	if !eligibility.AcceptingVotes() {
		return nil, domain.ErrNotAcceptingVotes
	}
	tournament := eligibility.ActiveTournament

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrMissingName
	}

	if err := validateSelections(req.First, req.Second, req.Third); err != nil {
		return nil, err
	}

	// Observe existing votes before replacing; more than one means the
	// at-most-one invariant was broken earlier and is being repaired now.
	existing, err := s.voteRepo.ListByVoter(ctx, name, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if len(existing) > 1 {
		s.logger.Warn("Sweeping stale duplicate votes",
			zap.String("tournament_id", tournament.ID),
			zap.Int("count", len(existing)))
	}

	vote := &domain.Vote{
		Name:         name,
		First:        req.First,
		Second:       req.Second,
		Third:        req.Third,
		VoteAt:       s.now().In(s.location).Format(VoteAtLayout),
		TournamentID: tournament.ID,
	}

	if err := s.voteRepo.Replace(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	s.logger.Info("Vote recorded",
		zap.String("vote_id", vote.ID),
		zap.String("tournament_id", tournament.ID),
		zap.Bool("resubmission", len(existing) > 0))

	return &domain.VoteResponse{
		VoteID:       vote.ID,
		TournamentID: tournament.ID,
		VoteAt:       vote.VoteAt,
		Message:      "送信しました！",
	}, nil
}

// GetMyVote returns the participant's live vote for today's tournament, or
// nil when they have not voted or today is not a tournament day
func (s *VotingService) GetMyVote(ctx context.Context, name string) (*domain.Vote, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrMissingName
	}

	eligibility, err := s.Eligibility(ctx)
	if err != nil {
		return nil, err
	}
	if !eligibility.IsTournamentDay {
		return nil, nil
	}

	votes, err := s.voteRepo.ListByVoter(ctx, name, eligibility.ActiveTournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	if len(votes) == 0 {
		return nil, nil
	}

	// Latest wins when stale duplicates exist
	latest := votes[0]
	for _, v := range votes[1:] {
		if v.VoteAt > latest.VoteAt {
			latest = v
		}
	}
	return &latest, nil
}

// validateSelections requires three selected, pairwise distinct team IDs
func validateSelections(first, second, third string) error {
	if first == "" || second == "" || third == "" {
		return domain.ErrDuplicateSelection
	}
	if first == second || second == third || first == third {
		return domain.ErrDuplicateSelection
	}
	return nil
}
