// Package controller ties a chart to its weekly progress record. It is the
// only place where both are touched by one logical operation, and edits to
// the chart never rewrite progress.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dukerupert/chartmaker/internal/chart"
	"github.com/dukerupert/chartmaker/internal/layout"
	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/progress"
	"github.com/dukerupert/chartmaker/internal/week"
)

var ErrInvalidDay = errors.New("day index must be between 0 and 6")

type Controller struct {
	chart    *chart.Chart
	progress *progress.Store
	childKey string
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Controller)

// WithClock overrides time.Now for week calculations.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func New(c *chart.Chart, ps *progress.Store, childKey string, opts ...Option) *Controller {
	ctl := &Controller{
		chart:    c,
		progress: ps,
		childKey: childKey,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl
}

// Chart exposes the underlying chart for read-only projections.
func (c *Controller) Chart() *chart.Chart {
	return c.chart
}

// Progress loads this week's record. A record from any other week is
// discarded in favour of an empty one for the current week; nothing is
// carried over.
func (c *Controller) Progress(ctx context.Context) model.WeekProgress {
	now := c.now()
	current := week.StartDate(now)
	stored, ok := c.progress.Load(ctx, c.childKey)
	if !ok {
		return model.NewWeekProgress(current)
	}
	if week.Rolled(stored.WeekStart, now) {
		c.logger.Debug("week rolled over", "child", c.childKey, "stored", stored.WeekStart, "current", current)
		return model.NewWeekProgress(current)
	}
	return stored
}

// ToggleTaskCheck flips one day for a task and saves the whole record.
// Toggling a task that is not on the chart changes nothing.
func (c *Controller) ToggleTaskCheck(ctx context.Context, taskID string, day int) (model.WeekProgress, error) {
	if day < 0 || day >= model.DaysPerWeek {
		return model.WeekProgress{}, ErrInvalidDay
	}
	p := c.Progress(ctx)
	if _, ok := c.chart.Task(taskID); !ok {
		return p, nil
	}
	p.TaskChecks[taskID] = flip(p.TaskChecks, taskID, day)
	return p, c.progress.Save(ctx, c.childKey, p)
}

// ToggleChoreCheck is ToggleTaskCheck for chores.
func (c *Controller) ToggleChoreCheck(ctx context.Context, choreID string, day int) (model.WeekProgress, error) {
	if day < 0 || day >= model.DaysPerWeek {
		return model.WeekProgress{}, ErrInvalidDay
	}
	p := c.Progress(ctx)
	if _, ok := c.chart.Chore(choreID); !ok {
		return p, nil
	}
	p.ChoreChecks[choreID] = flip(p.ChoreChecks, choreID, day)
	return p, c.progress.Save(ctx, c.childKey, p)
}

func flip(m map[string][]bool, id string, day int) []bool {
	days := model.Checks(m, id)
	days[day] = !days[day]
	return days
}

// ResetWeek clears every check and stamps the record with the current week.
// Callers confirm with the user before invoking it.
func (c *Controller) ResetWeek(ctx context.Context) (model.WeekProgress, error) {
	p := model.NewWeekProgress(week.StartDate(c.now()))
	return p, c.progress.Save(ctx, c.childKey, p)
}

// TaskChecks returns the week's checks for a task on the chart. Arrays left
// behind by removed tasks are not reachable through it.
func (c *Controller) TaskChecks(ctx context.Context, taskID string) ([]bool, bool) {
	if _, ok := c.chart.Task(taskID); !ok {
		return nil, false
	}
	return model.Checks(c.Progress(ctx).TaskChecks, taskID), true
}

func (c *Controller) ChoreChecks(ctx context.Context, choreID string) ([]bool, bool) {
	if _, ok := c.chart.Chore(choreID); !ok {
		return nil, false
	}
	return model.Checks(c.Progress(ctx).ChoreChecks, choreID), true
}

// Pages paginates all tasks, morning first, for the print view.
func (c *Controller) Pages(pageSize int) ([][]model.Task, error) {
	if pageSize <= 0 {
		return nil, layout.ErrInvalidPageSize
	}
	return layout.Paginate(c.chart.AllTasks(), pageSize), nil
}

// Summary counts this week's checked boxes for items currently on the chart.
func (c *Controller) Summary(ctx context.Context) model.WeekSummary {
	p := c.Progress(ctx)
	tasks := c.chart.AllTasks()
	chores := c.chart.Chores()

	s := model.WeekSummary{
		WeekStart:  p.WeekStart,
		TaskSlots:  len(tasks) * model.DaysPerWeek,
		ChoreSlots: len(chores) * model.DaysPerWeek,
	}
	for day := 0; day < model.DaysPerWeek; day++ {
		allDone := len(tasks) > 0
		for _, t := range tasks {
			if model.Checks(p.TaskChecks, t.ID)[day] {
				s.TaskChecks++
			} else {
				allDone = false
			}
		}
		if allDone {
			s.DaysCompleted++
		}
		for _, ch := range chores {
			if model.Checks(p.ChoreChecks, ch.ID)[day] {
				s.ChoreChecks++
			}
		}
	}
	return s
}
