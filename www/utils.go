package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

func intOrDefault(r *http.Request, key string, def int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("error writing json response", slog.Any("error", err))
	}
}

func handleError(logger *slog.Logger, w http.ResponseWriter, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	http.Error(w, msg, http.StatusInternalServerError)
}
