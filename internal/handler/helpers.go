package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/chartmaker/internal/chart"
	"github.com/dukerupert/chartmaker/internal/controller"
	"github.com/dukerupert/chartmaker/internal/illustration"
	"github.com/dukerupert/chartmaker/internal/layout"
	"github.com/dukerupert/chartmaker/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func parseDayParam(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("day"))
}

// fail maps service errors to responses. Unexpected errors are logged and
// reported as 500 with msg.
func fail(w http.ResponseWriter, logger *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidChildKey),
		errors.Is(err, chart.ErrInvalidCategory),
		errors.Is(err, controller.ErrInvalidDay),
		errors.Is(err, layout.ErrInvalidPageSize):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, illustration.ErrQueueFull):
		writeError(w, http.StatusServiceUnavailable, "illustration queue is full, try again later")
	case errors.Is(err, illustration.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "illustrations are not configured")
	default:
		logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}
