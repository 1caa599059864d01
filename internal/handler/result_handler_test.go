package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/internal/repository/mock"
	"github.com/ucan-lab/hado-ken/internal/service"
	"github.com/ucan-lab/hado-ken/pkg/logger"
)

func newTestResultHandler(t *testing.T, ledger *mock.VoteRepository, now time.Time) *ResultHandler {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	cache := service.NewCacheService(nil, zap.NewNop())
	teams := service.NewTeamService(&mock.TeamRepository{Teams: []domain.Team{
		{ID: "t1", Name: "Alpha", HRP: 10},
		{ID: "t2", Name: "Beta", HRP: 20},
		{ID: "t3", Name: "Gamma", HRP: 5},
	}}, cache, "", "/images/no-image.png", zap.NewNop())
	tournaments := &mock.TournamentRepository{Tournaments: handlerTestCalendar}
	voting := service.NewVotingService(ledger, tournaments, cache, time.UTC,
		service.Deadline{Hour: 12, Minute: 30}, zap.NewNop()).
		WithClock(func() time.Time { return now })
	results := service.NewResultService(ledger, teams, voting, zap.NewNop())

	return NewResultHandler(results, log)
}

func TestGetResultsHandlerAfterDeadline(t *testing.T) {
	ledger := &mock.VoteRepository{Votes: []domain.Vote{
		{Name: "Taro", TournamentID: "tour-1", First: "t2", Second: "t1", Third: "t3", VoteAt: "2024/06/01 09:00:00"},
	}}
	h := newTestResultHandler(t, ledger, time.Date(2024, 6, 1, 12, 31, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/voting/results", nil)
	rec := httptest.NewRecorder()
	h.GetResults(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	var view domain.ResultsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.ResultsVisible)
	require.Len(t, view.Predictions, 1)
	assert.Equal(t, "Taro", view.Predictions[0].Name)
	assert.Equal(t, "Beta", view.Predictions[0].First)
}

func TestGetResultsHandlerHiddenBeforeDeadline(t *testing.T) {
	h := newTestResultHandler(t, &mock.VoteRepository{}, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/voting/results", nil)
	rec := httptest.NewRecorder()
	h.GetResults(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var view domain.ResultsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.False(t, view.ResultsVisible)
	assert.Empty(t, view.Predictions)
}

func TestGetResultsHandlerNotModified(t *testing.T) {
	h := newTestResultHandler(t, &mock.VoteRepository{}, time.Date(2024, 6, 1, 12, 31, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/voting/results", nil)
	rec := httptest.NewRecorder()
	h.GetResults(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/voting/results", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.GetResults(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}
