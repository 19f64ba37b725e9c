package service

import (
	"context"
	"fmt"

	"github.com/dukerupert/chartmaker/internal/chart"
	"github.com/dukerupert/chartmaker/internal/illustration"
	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/websocket"
)

func entityFor(kind illustration.Kind) string {
	if kind == illustration.KindChore {
		return websocket.EntityChore
	}
	return websocket.EntityTask
}

func itemExists(c *chart.Chart, kind illustration.Kind, id string) bool {
	switch kind {
	case illustration.KindTask:
		_, ok := c.Task(id)
		return ok
	case illustration.KindChore:
		_, ok := c.Chore(id)
		return ok
	}
	return false
}

func setStatus(c *chart.Chart, kind illustration.Kind, id, ref string, status model.IllustrationStatus) {
	if kind == illustration.KindChore {
		c.SetChoreIllustration(id, ref, status)
		return
	}
	c.SetTaskIllustration(id, ref, status)
}

func currentRef(c *chart.Chart, kind illustration.Kind, id string) string {
	if kind == illustration.KindChore {
		ch, _ := c.Chore(id)
		return ch.IllustrationRef
	}
	t, _ := c.Task(id)
	return t.IllustrationRef
}

// RequestIllustration queues image generation for a task or chore and marks
// it pending. It reports false when the item is not on the chart.
func (s *ChartService) RequestIllustration(key string, kind illustration.Kind, id string, req illustration.Request) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue == nil {
		return false, illustration.ErrNotConfigured
	}
	if !ValidChildKey(key) {
		return false, ErrInvalidChildKey
	}
	c, found, err := s.load(key)
	if err != nil {
		return false, err
	}
	if !found || !itemExists(c, kind, id) {
		return false, nil
	}

	if err := s.queue.Enqueue(illustration.Job{ChildKey: key, Kind: kind, ItemID: id, Request: req}); err != nil {
		return false, err
	}
	setStatus(c, kind, id, currentRef(c, kind, id), model.IllustrationPending)
	if err := s.charts.Save(key, c.Snapshot()); err != nil {
		return false, fmt.Errorf("save chart %s: %w", key, err)
	}
	s.broadcast(websocket.NewMessage(key, entityFor(kind), "illustration", id,
		map[string]any{"status": string(model.IllustrationPending)}))
	return true, nil
}

// IllustrationStarted marks the item as generating.
func (s *ChartService) IllustrationStarted(_ context.Context, job illustration.Job) {
	s.applyStatus(job, "", model.IllustrationGenerating)
}

// IllustrationFinished stores the returned reference, or marks the item
// failed and keeps its previous image. Items removed while the job was in
// flight are ignored.
func (s *ChartService) IllustrationFinished(_ context.Context, res illustration.Result) {
	if res.Err != nil {
		s.applyStatus(res.Job, "", model.IllustrationFailed)
		return
	}
	s.applyStatus(res.Job, res.Ref, model.IllustrationCompleted)
}

// applyStatus keeps the current reference when ref is empty.
func (s *ChartService) applyStatus(job illustration.Job, ref string, status model.IllustrationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, found, err := s.load(job.ChildKey)
	if err != nil {
		s.logger.Error("apply illustration", "child", job.ChildKey, "id", job.ItemID, "error", err)
		return
	}
	if !found || !itemExists(c, job.Kind, job.ItemID) {
		s.logger.Debug("illustration target gone", "child", job.ChildKey, "id", job.ItemID)
		return
	}
	if ref == "" {
		ref = currentRef(c, job.Kind, job.ItemID)
	}
	setStatus(c, job.Kind, job.ItemID, ref, status)
	if err := s.charts.Save(job.ChildKey, c.Snapshot()); err != nil {
		s.logger.Error("save illustration", "child", job.ChildKey, "id", job.ItemID, "error", err)
		return
	}
	extra := map[string]any{"status": string(status)}
	if status == model.IllustrationCompleted {
		extra["ref"] = ref
	}
	s.broadcast(websocket.NewMessage(job.ChildKey, entityFor(job.Kind), "illustration", job.ItemID, extra))
}
