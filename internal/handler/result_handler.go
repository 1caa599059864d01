package handler

import (
	"errors"
	"net/http"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/internal/service"
	apperrors "github.com/ucan-lab/hado-ken/pkg/errors"
	"github.com/ucan-lab/hado-ken/pkg/logger"
)

type ResultHandler struct {
	resultService *service.ResultService
	log           *logger.Logger
}

func NewResultHandler(resultService *service.ResultService, log *logger.Logger) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		log:           log,
	}
}

// GetResults handles GET /api/v1/voting/results
func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results, err := h.resultService.Results(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAmbiguousSchedule) {
			respondError(w, apperrors.NewConflictError("大会スケジュールが重複しています。運営にお問い合わせください。"))
			return
		}
		h.log.WithError(err).Error("Failed to get voting results")
		respondError(w, apperrors.NewExternalError("投票結果の取得に失敗しました。", err))
		return
	}

	etag := generateETag(results)
	if writeNotModified(w, r, etag, 30) {
		return
	}

	respondJSON(w, http.StatusOK, results)
}
