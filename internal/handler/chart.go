package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/chartmaker/internal/illustration"
	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/service"
)

// ChartHandler serves chart editing. Operations on ids that are not on the
// chart succeed without changing anything.
type ChartHandler struct {
	svc    *service.ChartService
	logger *slog.Logger
}

func NewChartHandler(svc *service.ChartService, logger *slog.Logger) *ChartHandler {
	return &ChartHandler{svc: svc, logger: logger}
}

func (h *ChartHandler) List(w http.ResponseWriter, r *http.Request) {
	children, err := h.svc.ListCharts()
	if err != nil {
		fail(w, h.logger, err, "failed to list charts")
		return
	}
	if children == nil {
		children = []model.Child{}
	}
	writeJSON(w, http.StatusOK, children)
}

func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Chart(r.PathValue("child"))
	if err != nil {
		fail(w, h.logger, err, "failed to get chart")
		return
	}
	if c.Tasks == nil {
		c.Tasks = []model.Task{}
	}
	if c.Chores == nil {
		c.Chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, c)
}

type childRequest struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}

func (h *ChartHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if !decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	child, err := h.svc.UpdateChild(r.PathValue("child"), req.Name, strings.TrimSpace(req.Age))
	if err != nil {
		fail(w, h.logger, err, "failed to update child")
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *ChartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteChart(r.PathValue("child")); err != nil {
		fail(w, h.logger, err, "failed to delete chart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type taskRequest struct {
	Title    string         `json:"title"`
	Category model.Category `json:"category"`
}

func (h *ChartHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decode(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := h.svc.AddTask(r.PathValue("child"), req.Title, req.Category)
	if err != nil {
		fail(w, h.logger, err, "failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *ChartHandler) RenameTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decode(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := h.svc.RenameTask(r.PathValue("child"), r.PathValue("id"), req.Title); err != nil {
		fail(w, h.logger, err, "failed to rename task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChartHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveTask(r.PathValue("child"), r.PathValue("id")); err != nil {
		fail(w, h.logger, err, "failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	BeforeID string         `json:"before_id"`
	Category model.Category `json:"category"`
}

func (h *ChartHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decode(w, r, &req) {
		return
	}
	if !req.Category.Valid() {
		writeError(w, http.StatusBadRequest, "category must be morning or evening")
		return
	}

	if err := h.svc.ReorderTask(r.PathValue("child"), r.PathValue("id"), req.BeforeID, req.Category); err != nil {
		fail(w, h.logger, err, "failed to move task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type choreRequest struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

func (h *ChartHandler) CreateChore(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if !decode(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	chore, err := h.svc.AddChore(r.PathValue("child"), req.Title, strings.TrimSpace(req.Value))
	if err != nil {
		fail(w, h.logger, err, "failed to create chore")
		return
	}
	writeJSON(w, http.StatusCreated, chore)
}

type choreFieldRequest struct {
	Field model.ChoreField `json:"field"`
	Value string           `json:"value"`
}

func (h *ChartHandler) UpdateChore(w http.ResponseWriter, r *http.Request) {
	var req choreFieldRequest
	if !decode(w, r, &req) {
		return
	}
	if !req.Field.Valid() {
		writeError(w, http.StatusBadRequest, "field must be title or value")
		return
	}
	req.Value = strings.TrimSpace(req.Value)
	if req.Field == model.ChoreFieldTitle && req.Value == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := h.svc.UpdateChoreField(r.PathValue("child"), r.PathValue("id"), req.Field, req.Value); err != nil {
		fail(w, h.logger, err, "failed to update chore")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChartHandler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveChore(r.PathValue("child"), r.PathValue("id")); err != nil {
		fail(w, h.logger, err, "failed to delete chore")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChartHandler) MoveChore(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.ReorderChore(r.PathValue("child"), r.PathValue("id"), req.BeforeID); err != nil {
		fail(w, h.logger, err, "failed to move chore")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChartHandler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	var goal model.RewardGoal
	if !decode(w, r, &goal) {
		return
	}
	goal.Name = strings.TrimSpace(goal.Name)
	goal.TargetAmount = strings.TrimSpace(goal.TargetAmount)
	goal.CurrencySymbol = strings.TrimSpace(goal.CurrencySymbol)

	if err := h.svc.SetRewardGoal(r.PathValue("child"), goal); err != nil {
		fail(w, h.logger, err, "failed to update reward goal")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

type illustrationRequest struct {
	Description string   `json:"description"`
	References  []string `json:"references"`
}

func (h *ChartHandler) TaskIllustration(w http.ResponseWriter, r *http.Request) {
	h.requestIllustration(w, r, illustration.KindTask)
}

func (h *ChartHandler) ChoreIllustration(w http.ResponseWriter, r *http.Request) {
	h.requestIllustration(w, r, illustration.KindChore)
}

func (h *ChartHandler) requestIllustration(w http.ResponseWriter, r *http.Request, kind illustration.Kind) {
	var req illustrationRequest
	if !decode(w, r, &req) {
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	queued, err := h.svc.RequestIllustration(r.PathValue("child"), kind, r.PathValue("id"),
		illustration.Request{Description: req.Description, References: req.References})
	if err != nil {
		fail(w, h.logger, err, "failed to request illustration")
		return
	}
	if !queued {
		writeError(w, http.StatusNotFound, string(kind)+" not found")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": string(model.IllustrationPending)})
}
