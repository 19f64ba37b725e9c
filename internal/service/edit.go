package service

import (
	"github.com/dukerupert/chartmaker/internal/controller"
	"github.com/dukerupert/chartmaker/internal/model"
	"github.com/dukerupert/chartmaker/internal/websocket"
)

func (s *ChartService) AddTask(key, title string, category model.Category) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task model.Task
	err := s.edit(key, func(ctl *controller.Controller) error {
		var err error
		task, err = ctl.AddTask(title, category)
		return err
	})
	if err != nil {
		return model.Task{}, err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityTask, "created", task.ID, map[string]any{"category": string(category)}))
	return task, nil
}

func (s *ChartService) RemoveTask(key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.edit(key, func(ctl *controller.Controller) error {
		ctl.RemoveTask(id)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityTask, "deleted", id, nil))
	return nil
}

func (s *ChartService) RenameTask(key, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.edit(key, func(ctl *controller.Controller) error {
		ctl.RenameTask(id, title)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityTask, "updated", id, nil))
	return nil
}

// ReorderTask moves id before beforeID within category.
func (s *ChartService) ReorderTask(key, id, beforeID string, category model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.edit(key, func(ctl *controller.Controller) error {
		ctl.ReorderTask(id, beforeID, category)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityTask, "moved", id, map[string]any{"before_id": beforeID}))
	return nil
}

func (s *ChartService) AddChore(key, title, value string) (model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var chore model.Chore
	err := s.edit(key, func(ctl *controller.Controller) error {
		chore = ctl.AddChore(title, value)
		return nil
	})
	if err != nil {
		return model.Chore{}, err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityChore, "created", chore.ID, nil))
	return chore, nil
}

func (s *ChartService) RemoveChore(key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.edit(key, func(ctl *controller.Controller) error {
		ctl.RemoveChore(id)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityChore, "deleted", id, nil))
	return nil
}

func (s *ChartService) UpdateChoreField(key, id string, field model.ChoreField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.edit(key, func(ctl *controller.Controller) error {
		ctl.UpdateChoreField(id, field, value)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityChore, "updated", id, map[string]any{"field": string(field)}))
	return nil
}

func (s *ChartService) ReorderChore(key, id, beforeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.edit(key, func(ctl *controller.Controller) error {
		ctl.ReorderChore(id, beforeID)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityChore, "moved", id, map[string]any{"before_id": beforeID}))
	return nil
}

func (s *ChartService) SetRewardGoal(key string, goal model.RewardGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.edit(key, func(ctl *controller.Controller) error {
		ctl.SetRewardGoal(goal)
		return nil
	})
	if err != nil {
		return err
	}
	s.broadcast(websocket.NewMessage(key, websocket.EntityReward, "updated", "", nil))
	return nil
}
