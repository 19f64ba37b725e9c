package controller

import "github.com/dukerupert/chartmaker/internal/model"

// The edit operations below are pure collection surgery. Removing an item
// leaves any check array stored under its id in place.

func (c *Controller) AddTask(title string, category model.Category) (model.Task, error) {
	return c.chart.AddTask(title, category)
}

func (c *Controller) RemoveTask(id string) {
	c.chart.RemoveTask(id)
}

func (c *Controller) RenameTask(id, title string) {
	c.chart.RenameTask(id, title)
}

func (c *Controller) ReorderTask(id, beforeID string, category model.Category) {
	c.chart.ReorderTask(id, beforeID, category)
}

func (c *Controller) AddChore(title, value string) model.Chore {
	return c.chart.AddChore(title, value)
}

func (c *Controller) RemoveChore(id string) {
	c.chart.RemoveChore(id)
}

func (c *Controller) UpdateChoreField(id string, field model.ChoreField, value string) {
	c.chart.UpdateChoreField(id, field, value)
}

func (c *Controller) ReorderChore(id, beforeID string) {
	c.chart.ReorderChore(id, beforeID)
}

func (c *Controller) SetRewardGoal(goal model.RewardGoal) {
	c.chart.SetRewardGoal(goal)
}
