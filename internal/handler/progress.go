package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dukerupert/chartmaker/internal/layout"
	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/service"
	"github.com/dukerupert/chartmaker/internal/week"
)

// ProgressHandler serves weekly check-offs and the print projection.
type ProgressHandler struct {
	svc    *service.ChartService
	now    func() time.Time
	logger *slog.Logger
}

func NewProgressHandler(svc *service.ChartService, now func() time.Time, logger *slog.Logger) *ProgressHandler {
	if now == nil {
		now = time.Now
	}
	return &ProgressHandler{svc: svc, now: now, logger: logger}
}

type progressResponse struct {
	model.WeekProgress
	Today   int               `json:"today"`
	Summary model.WeekSummary `json:"summary"`
}

func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	child := r.PathValue("child")
	p, err := h.svc.Progress(r.Context(), child)
	if err != nil {
		fail(w, h.logger, err, "failed to load progress")
		return
	}
	summary, err := h.svc.Summary(r.Context(), child)
	if err != nil {
		fail(w, h.logger, err, "failed to load progress")
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{
		WeekProgress: p,
		Today:        week.DayIndex(h.now()),
		Summary:      summary,
	})
}

func (h *ProgressHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	day, err := parseDayParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}
	p, err := h.svc.ToggleTaskCheck(r.Context(), r.PathValue("child"), r.PathValue("id"), day)
	if err != nil {
		fail(w, h.logger, err, "failed to toggle task")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProgressHandler) ToggleChore(w http.ResponseWriter, r *http.Request) {
	day, err := parseDayParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}
	p, err := h.svc.ToggleChoreCheck(r.Context(), r.PathValue("child"), r.PathValue("id"), day)
	if err != nil {
		fail(w, h.logger, err, "failed to toggle chore")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// Reset clears the week. The body must carry {"confirm": true}.
func (h *ProgressHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decode(w, r, &req) {
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "reset requires confirm: true")
		return
	}
	p, err := h.svc.ResetWeek(r.Context(), r.PathValue("child"))
	if err != nil {
		fail(w, h.logger, err, "failed to reset week")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type pagesResponse struct {
	PageSize  int            `json:"page_size"`
	PageCount int            `json:"page_count"`
	Pages     [][]model.Task `json:"pages"`
}

func (h *ProgressHandler) Pages(w http.ResponseWriter, r *http.Request) {
	size := layout.DefaultPageSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || !layout.ValidPageSize(n) {
			writeError(w, http.StatusBadRequest, "size must be one of 4, 6, 8, 10")
			return
		}
		size = n
	}
	pages, err := h.svc.Pages(r.PathValue("child"), size)
	if err != nil {
		fail(w, h.logger, err, "failed to paginate chart")
		return
	}
	writeJSON(w, http.StatusOK, pagesResponse{PageSize: size, PageCount: len(pages), Pages: pages})
}
