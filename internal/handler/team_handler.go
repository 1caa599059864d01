package handler

import (
	"net/http"

	"github.com/ucan-lab/hado-ken/internal/service"
	apperrors "github.com/ucan-lab/hado-ken/pkg/errors"
	"github.com/ucan-lab/hado-ken/pkg/logger"
)

type TeamHandler struct {
	teamService *service.TeamService
	log         *logger.Logger
}

func NewTeamHandler(teamService *service.TeamService, log *logger.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		log:         log,
	}
}

// ListTeams handles GET /api/teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.log.WithError(err).Error("Failed to list teams")
		respondError(w, apperrors.NewExternalError("チーム一覧の取得に失敗しました。", err))
		return
	}

	payload := map[string]interface{}{
		"teams": teams,
	}

	etag := generateETag(payload)
	if writeNotModified(w, r, etag, 60) {
		return
	}

	respondJSON(w, http.StatusOK, payload)
}
