package service

import (
	"context"
	"strconv"

	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/websocket"
)

// Progress returns this week's checks for key, after rollover.
func (s *ChartService) Progress(ctx context.Context, key string) (model.WeekProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctl, err := s.open(key)
	if err != nil {
		return model.WeekProgress{}, err
	}
	return ctl.Progress(ctx), nil
}

func (s *ChartService) ToggleTaskCheck(ctx context.Context, key, id string, day int) (model.WeekProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctl, err := s.open(key)
	if err != nil {
		return model.WeekProgress{}, err
	}
	p, err := ctl.ToggleTaskCheck(ctx, id, day)
	if err != nil {
		return p, err
	}
	if checks, ok := p.TaskChecks[id]; ok {
		s.broadcast(websocket.NewMessage(key, websocket.EntityProgress, "toggled", id,
			map[string]any{"kind": "task", "day": strconv.Itoa(day), "checked": checks[day]}))
	}
	return p, nil
}

func (s *ChartService) ToggleChoreCheck(ctx context.Context, key, id string, day int) (model.WeekProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctl, err := s.open(key)
	if err != nil {
		return model.WeekProgress{}, err
	}
	p, err := ctl.ToggleChoreCheck(ctx, id, day)
	if err != nil {
		return p, err
	}
	if checks, ok := p.ChoreChecks[id]; ok {
		s.broadcast(websocket.NewMessage(key, websocket.EntityProgress, "toggled", id,
			map[string]any{"kind": "chore", "day": strconv.Itoa(day), "checked": checks[day]}))
	}
	return p, nil
}

// ResetWeek clears every check for key. Confirmation happens at the caller.
func (s *ChartService) ResetWeek(ctx context.Context, key string) (model.WeekProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctl, err := s.open(key)
	if err != nil {
		return model.WeekProgress{}, err
	}
	p, err := ctl.ResetWeek(ctx)
	if err != nil {
		return p, err
	}
	s.logger.Info("week reset", "child", key, "week_start", p.WeekStart)
	s.broadcast(websocket.NewMessage(key, websocket.EntityProgress, "reset", "", map[string]any{"week_start": p.WeekStart}))
	return p, nil
}

// Pages returns the print projection of all tasks.
func (s *ChartService) Pages(key string, pageSize int) ([][]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctl, err := s.open(key)
	if err != nil {
		return nil, err
	}
	return ctl.Pages(pageSize)
}

func (s *ChartService) Summary(ctx context.Context, key string) (model.WeekSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctl, err := s.open(key)
	if err != nil {
		return model.WeekSummary{}, err
	}
	return ctl.Summary(ctx), nil
}
