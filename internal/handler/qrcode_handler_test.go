package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucan-lab/hado-ken/pkg/logger"
)

func TestGetQRCode(t *testing.T) {
	log, err := logger.New("error")
	require.NoError(t, err)

	h := NewQRCodeHandler("https://hado-ken.example.com/vote", log)

	req := httptest.NewRequest(http.MethodGet, "/api/qr-code", nil)
	rec := httptest.NewRecorder()
	h.GetQRCode(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}
