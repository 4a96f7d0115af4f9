package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Bgoodwin24/insightforge/internal/logger"
)

// GetContentType returns the appropriate content type for a file based on its extension
func GetContentType(filePath string) string {
	switch {
	case strings.HasSuffix(filePath, ".html"):
		return "text/html; charset=utf-8"
	case strings.HasSuffix(filePath, ".png"):
		return "image/png"
	case strings.HasSuffix(filePath, ".json"):
		return "application/json"
	case strings.HasSuffix(filePath, ".md"):
		return "text/markdown"
	case strings.HasSuffix(filePath, ".csv"):
		return "text/csv"
	}
	return "application/octet-stream"
}

// writeJSON encodes v before touching the response, so an encoding failure
// becomes a 500 instead of a success status with an empty body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode response", err, map[string]interface{}{"status": status})
		writeError(w, http.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
