package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/internal/middleware"
	"github.com/ucan-lab/hado-ken/internal/service"
	apperrors "github.com/ucan-lab/hado-ken/pkg/errors"
	"github.com/ucan-lab/hado-ken/pkg/logger"
)

type VotingHandler struct {
	votingService *service.VotingService
	log           *logger.Logger
}

func NewVotingHandler(votingService *service.VotingService, log *logger.Logger) *VotingHandler {
	return &VotingHandler{
		votingService: votingService,
		log:           log,
	}
}

// GetVotingStatus handles GET /api/v1/voting/status
func (h *VotingHandler) GetVotingStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.votingService.GetVotingStatus(ctx)
	if err != nil {
		h.log.WithError(err).Error("Failed to get voting status")
		respondError(w, h.mapError(err))
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// SubmitVote handles POST /api/v1/voting/vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("リクエストの形式が正しくありません。"))
		return
	}

	response, err := h.votingService.SubmitVote(ctx, &req)
	if err != nil {
		appErr := h.mapError(err)
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.log.WithError(err).
				WithField("request_id", middleware.GetRequestID(ctx)).
				Error("Vote submission failed")
		}
		respondError(w, appErr)
		return
	}

	respondJSON(w, http.StatusCreated, response)
}

// GetMyVoteStatus handles GET /api/v1/voting/my-status?name=
func (h *VotingHandler) GetMyVoteStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("name")

	vote, err := h.votingService.GetMyVote(ctx, name)
	if err != nil {
		respondError(w, h.mapError(err))
		return
	}

	if vote == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"has_voted": false,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"has_voted": true,
		"vote_id":   vote.ID,
		"first":     vote.First,
		"second":    vote.Second,
		"third":     vote.Third,
		"vote_at":   vote.VoteAt,
	})
}

// mapError converts service errors to the HTTP error taxonomy. User-facing
// messages mirror the ballot page wording.
func (h *VotingHandler) mapError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrNotAcceptingVotes):
		return apperrors.NewForbiddenError("本日の投票できません。")
	case errors.Is(err, domain.ErrMissingName):
		return apperrors.NewValidationError("名前を入力してください。")
	case errors.Is(err, domain.ErrDuplicateSelection):
		return apperrors.NewValidationError("1位から3位には異なるチームを指定してください。")
	case errors.Is(err, domain.ErrAmbiguousSchedule):
		return apperrors.NewConflictError("大会スケジュールが重複しています。運営にお問い合わせください。")
	default:
		return apperrors.NewExternalError("送信に失敗しました。", err)
	}
}
