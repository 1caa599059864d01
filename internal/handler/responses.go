package handler

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/ucan-lab/hado-ken/pkg/errors"
)

// errorBody is the JSON error envelope returned by every endpoint
type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, appErr *apperrors.AppError) {
	var body errorBody
	body.Error.Type = string(appErr.Type)
	body.Error.Message = appErr.Message
	respondJSON(w, appErr.StatusCode, body)
}

// generateETag derives a weak content hash for read-endpoint caching
func generateETag(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return fmt.Sprintf(`"%x"`, hash)
}

// writeNotModified handles conditional requests against an ETag. Returns
// true when the response has already been written.
func writeNotModified(w http.ResponseWriter, r *http.Request, etag string, maxAge int) bool {
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	return false
}
