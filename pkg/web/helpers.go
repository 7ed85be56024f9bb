package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"productapi/pkg/apperr"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondAppError is the terminal error stage. It logs err for diagnostics and
// writes exactly one JSON error response based on its classification:
// operational errors keep their status and message, everything else becomes a
// generic 500.
func RespondAppError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, message := apperr.Classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Warn("Request rejected", "status", status, "error", err)
	}
	RespondError(w, logger, status, message)
}
