package mock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ucan-lab/hado-ken/internal/domain"
)

// In-memory repositories for tests. Each allows injecting an error per
// operation to exercise store-failure paths without a database.

// TeamRepository is an in-memory team directory
type TeamRepository struct {
	Teams          []domain.Team
	ListTeamsError error
}

func (m *TeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	if m.ListTeamsError != nil {
		return nil, m.ListTeamsError
	}
	out := make([]domain.Team, len(m.Teams))
	copy(out, m.Teams)
	return out, nil
}

// TournamentRepository is an in-memory tournament calendar
type TournamentRepository struct {
	Tournaments          []domain.Tournament
	ListTournamentsError error
}

func (m *TournamentRepository) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	if m.ListTournamentsError != nil {
		return nil, m.ListTournamentsError
	}
	out := make([]domain.Tournament, len(m.Tournaments))
	copy(out, m.Tournaments)
	return out, nil
}

// VoteRepository is an in-memory vote ledger implementing the same
// replace-on-resubmit semantics as the Postgres repository
type VoteRepository struct {
	Votes  []domain.Vote
	nextID int

	ListByVoterError      error
	ListByTournamentError error
	ReplaceError          error
}

func (m *VoteRepository) ListByVoter(ctx context.Context, name, tournamentID string) ([]domain.Vote, error) {
	if m.ListByVoterError != nil {
		return nil, m.ListByVoterError
	}
	var out []domain.Vote
	for _, v := range m.Votes {
		if v.Name == name && v.TournamentID == tournamentID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *VoteRepository) ListByTournament(ctx context.Context, tournamentID string) ([]domain.Vote, error) {
	if m.ListByTournamentError != nil {
		return nil, m.ListByTournamentError
	}
	var out []domain.Vote
	for _, v := range m.Votes {
		if v.TournamentID == tournamentID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VoteAt < out[j].VoteAt })
	return out, nil
}

func (m *VoteRepository) Replace(ctx context.Context, vote *domain.Vote) error {
	if m.ReplaceError != nil {
		return m.ReplaceError
	}
	kept := m.Votes[:0]
	for _, v := range m.Votes {
		if v.Name != vote.Name || v.TournamentID != vote.TournamentID {
			kept = append(kept, v)
		}
	}
	m.Votes = kept

	m.nextID++
	vote.ID = fmt.Sprintf("vote-%d", m.nextID)
	vote.CreatedAt = time.Now()
	m.Votes = append(m.Votes, *vote)
	return nil
}
