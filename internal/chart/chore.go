package chart

import (
	"slices"

	"github.com/dukerupert/chartmaker/internal/model"
)

// Chores returns a copy of the chore list in order.
func (c *Chart) Chores() []model.Chore {
	out := slices.Clone(c.chores)
	if out == nil {
		out = []model.Chore{}
	}
	return out
}

func (c *Chart) Chore(id string) (model.Chore, bool) {
	i := c.findChore(id)
	if i < 0 {
		return model.Chore{}, false
	}
	return c.chores[i], true
}

func (c *Chart) findChore(id string) int {
	return slices.IndexFunc(c.chores, func(ch model.Chore) bool { return ch.ID == id })
}

// AddChore appends a chore with a fresh id.
func (c *Chart) AddChore(title, value string) model.Chore {
	ch := model.Chore{
		ID:    c.newID("chore"),
		Title: title,
		Value: value,
	}
	c.chores = append(c.chores, ch)
	return ch
}

func (c *Chart) RemoveChore(id string) {
	i := c.findChore(id)
	if i < 0 {
		return
	}
	c.chores = slices.Delete(c.chores, i, i+1)
}

// UpdateChoreField sets the title or value of a chore. Unknown fields are
// ignored like unknown ids.
func (c *Chart) UpdateChoreField(id string, field model.ChoreField, value string) {
	i := c.findChore(id)
	if i < 0 {
		return
	}
	switch field {
	case model.ChoreFieldTitle:
		c.chores[i].Title = value
	case model.ChoreFieldValue:
		c.chores[i].Value = value
	}
}

// ReorderChore moves id to sit immediately before beforeID. Chores have no
// category, so any two chores may be reordered.
func (c *Chart) ReorderChore(id, beforeID string) {
	c.chores = moveBefore(c.chores, id, beforeID, func(ch model.Chore) string { return ch.ID })
}

func (c *Chart) SetChoreIllustration(id, ref string, status model.IllustrationStatus) {
	i := c.findChore(id)
	if i < 0 {
		return
	}
	c.chores[i].IllustrationRef = ref
	c.chores[i].IllustrationStatus = status
}
