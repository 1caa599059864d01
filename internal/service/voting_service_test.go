package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/internal/repository/mock"
)

var testCalendar = []domain.Tournament{
	{ID: "tour-1", Name: "SPRING CUP", GameDate: "2024-06-01"},
}

func newTestVotingService(votes *mock.VoteRepository, calendar []domain.Tournament, now time.Time) *VotingService {
	tournaments := &mock.TournamentRepository{Tournaments: calendar}
	cache := NewCacheService(nil, zap.NewNop())
	deadline := Deadline{Hour: 12, Minute: 30, Second: 0}

	svc := NewVotingService(votes, tournaments, cache, time.UTC, deadline, zap.NewNop())
	return svc.WithClock(func() time.Time { return now })
}

func tournamentMorning() time.Time {
	return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
}

func TestSubmitVoteSuccess(t *testing.T) {
	ledger := &mock.VoteRepository{}
	svc := newTestVotingService(ledger, testCalendar, tournamentMorning())

	resp, err := svc.SubmitVote(context.Background(), &domain.VoteRequest{
		Name:   "Taro",
		First:  "t2",
		Second: "t1",
		Third:  "t3",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.VoteID)
	assert.Equal(t, "tour-1", resp.TournamentID)
	assert.Equal(t, "2024/06/01 09:00:00", resp.VoteAt)

	require.Len(t, ledger.Votes, 1)
	assert.Equal(t, "Taro", ledger.Votes[0].Name)
	assert.Equal(t, "t2", ledger.Votes[0].First)
}

func TestSubmitVoteResubmissionReplacesPrevious(t *testing.T) {
	ledger := &mock.VoteRepository{}

	svc := newTestVotingService(ledger, testCalendar, tournamentMorning())
	_, err := svc.SubmitVote(context.Background(), &domain.VoteRequest{
		Name: "Taro", First: "t2", Second: "t1", Third: "t3",
	})
	require.NoError(t, err)

	// Five minutes later, the same participant changes their mind
	svc = newTestVotingService(ledger, testCalendar, tournamentMorning().Add(5*time.Minute))
	_, err = svc.SubmitVote(context.Background(), &domain.VoteRequest{
		Name: "Taro", First: "t1", Second: "t2", Third: "t3",
	})
	require.NoError(t, err)

	require.Len(t, ledger.Votes, 1)
	assert.Equal(t, "t1", ledger.Votes[0].First)
	assert.Equal(t, "t2", ledger.Votes[0].Second)
	assert.Equal(t, "t3", ledger.Votes[0].Third)
	assert.Equal(t, "2024/06/01 09:05:00", ledger.Votes[0].VoteAt)
}

func TestSubmitVoteSweepsStaleDuplicates(t *testing.T) {
	// The invariant says at most one vote per (name, tournament), but the
	// ledger may hold stale duplicates from an earlier race
	ledger := &mock.VoteRepository{Votes: []domain.Vote{
		{ID: "old-1", Name: "Taro", TournamentID: "tour-1", VoteAt: "2024/06/01 08:00:00"},
		{ID: "old-2", Name: "Taro", TournamentID: "tour-1", VoteAt: "2024/06/01 08:01:00"},
	}}

	svc := newTestVotingService(ledger, testCalendar, tournamentMorning())
	_, err := svc.SubmitVote(context.Background(), &domain.VoteRequest{
		Name: "Taro", First: "t1", Second: "t2", Third: "t3",
	})
	require.NoError(t, err)

	require.Len(t, ledger.Votes, 1)
	assert.Equal(t, "t1", ledger.Votes[0].First)
}

func TestSubmitVoteRejections(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		req     *domain.VoteRequest
		wantErr error
	}{
		{
			name:    "not a tournament day",
			now:     time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
			req:     &domain.VoteRequest{Name: "Taro", First: "t1", Second: "t2", Third: "t3"},
			wantErr: domain.ErrNotAcceptingVotes,
		},
		{
			name:    "exactly at deadline",
			now:     time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
			req:     &domain.VoteRequest{Name: "Taro", First: "t1", Second: "t2", Third: "t3"},
			wantErr: domain.ErrNotAcceptingVotes,
		},
		{
			name:    "after deadline",
			now:     time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC),
			req:     &domain.VoteRequest{Name: "Taro", First: "t1", Second: "t2", Third: "t3"},
			wantErr: domain.ErrNotAcceptingVotes,
		},
		{
			name:    "empty name",
			now:     tournamentMorning(),
			req:     &domain.VoteRequest{Name: "", First: "t1", Second: "t2", Third: "t3"},
			wantErr: domain.ErrMissingName,
		},
		{
			name:    "whitespace-only name",
			now:     tournamentMorning(),
			req:     &domain.VoteRequest{Name: "   ", First: "t1", Second: "t2", Third: "t3"},
			wantErr: domain.ErrMissingName,
		},
		{
			name:    "first equals second",
			now:     tournamentMorning(),
			req:     &domain.VoteRequest{Name: "Taro", First: "t1", Second: "t1", Third: "t3"},
			wantErr: domain.ErrDuplicateSelection,
		},
		{
			name:    "second equals third",
			now:     tournamentMorning(),
			req:     &domain.VoteRequest{Name: "Taro", First: "t1", Second: "t2", Third: "t2"},
			wantErr: domain.ErrDuplicateSelection,
		},
		{
			name:    "first equals third",
			now:     tournamentMorning(),
			req:     &domain.VoteRequest{Name: "Taro", First: "t3", Second: "t2", Third: "t3"},
			wantErr: domain.ErrDuplicateSelection,
		},
		{
			name:    "missing selection",
			now:     tournamentMorning(),
			req:     &domain.VoteRequest{Name: "Taro", First: "t1", Second: "", Third: "t3"},
			wantErr: domain.ErrDuplicateSelection,
		},
		{
			name: "eligibility checked before name",
			now:  time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
			req:  &domain.VoteRequest{Name: "", First: "t1", Second: "t1", Third: "t1"},
			// first failure wins: the window check precedes validation
			wantErr: domain.ErrNotAcceptingVotes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &mock.VoteRepository{}
			svc := newTestVotingService(ledger, testCalendar, tt.now)

			_, err := svc.SubmitVote(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)

			// Rejections never touch the ledger
			assert.Empty(t, ledger.Votes)
		})
	}
}

func TestSubmitVoteAmbiguousSchedule(t *testing.T) {
	calendar := []domain.Tournament{
		{ID: "tour-1", GameDate: "2024-06-01"},
		{ID: "tour-2", GameDate: "2024-06-01"},
	}
	ledger := &mock.VoteRepository{}
	svc := newTestVotingService(ledger, calendar, tournamentMorning())

	_, err := svc.SubmitVote(context.Background(), &domain.VoteRequest{
		Name: "Taro", First: "t1", Second: "t2", Third: "t3",
	})
	assert.True(t, errors.Is(err, domain.ErrAmbiguousSchedule))
	assert.Empty(t, ledger.Votes)
}

func TestSubmitVoteStoreFailure(t *testing.T) {
	ledger := &mock.VoteRepository{ReplaceError: errors.New("connection refused")}
	svc := newTestVotingService(ledger, testCalendar, tournamentMorning())

	_, err := svc.SubmitVote(context.Background(), &domain.VoteRequest{
		Name: "Taro", First: "t1", Second: "t2", Third: "t3",
	})
	assert.Error(t, err)
	assert.Empty(t, ledger.Votes)
}

func TestGetVotingStatus(t *testing.T) {
	svc := newTestVotingService(&mock.VoteRepository{}, testCalendar, tournamentMorning())

	status, err := svc.GetVotingStatus(context.Background())
	require.NoError(t, err)

	assert.True(t, status.IsTournamentDay)
	assert.True(t, status.IsBeforeDeadline)
	assert.True(t, status.AcceptingVotes)
	assert.Equal(t, "12:30", status.Deadline)
	require.NotNil(t, status.Tournament)
	assert.Equal(t, "SPRING CUP", status.Tournament.Name)
}

func TestGetMyVote(t *testing.T) {
	ledger := &mock.VoteRepository{Votes: []domain.Vote{
		{ID: "v1", Name: "Taro", TournamentID: "tour-1", First: "t1", VoteAt: "2024/06/01 08:00:00"},
		{ID: "v2", Name: "Taro", TournamentID: "tour-1", First: "t2", VoteAt: "2024/06/01 08:30:00"},
	}}
	svc := newTestVotingService(ledger, testCalendar, tournamentMorning())

	vote, err := svc.GetMyVote(context.Background(), "Taro")
	require.NoError(t, err)
	require.NotNil(t, vote)
	// Latest wins when stale duplicates exist
	assert.Equal(t, "v2", vote.ID)

	vote, err = svc.GetMyVote(context.Background(), "Hanako")
	require.NoError(t, err)
	assert.Nil(t, vote)

	_, err = svc.GetMyVote(context.Background(), "  ")
	assert.True(t, errors.Is(err, domain.ErrMissingName))
}
