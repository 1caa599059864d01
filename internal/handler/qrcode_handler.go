package handler

import (
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	apperrors "github.com/ucan-lab/hado-ken/pkg/errors"
	"github.com/ucan-lab/hado-ken/pkg/logger"
)

type QRCodeHandler struct {
	votePageURL string
	log         *logger.Logger
}

func NewQRCodeHandler(votePageURL string, log *logger.Logger) *QRCodeHandler {
	return &QRCodeHandler{
		votePageURL: votePageURL,
		log:         log,
	}
}

// GetQRCode handles GET /api/qr-code, serving a PNG QR code that points
// participants at the ballot page
func (h *QRCodeHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(h.votePageURL, qrcode.Medium, 256)
	if err != nil {
		h.log.WithError(err).Error("Failed to generate QR code")
		respondError(w, apperrors.NewInternalError("QRコードの生成に失敗しました。", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
