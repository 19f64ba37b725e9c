package chart

import (
	"slices"

	"github.com/dukerupert/chartmaker/internal/model"
)

// Tasks returns a copy of one category's tasks in order.
func (c *Chart) Tasks(category model.Category) []model.Task {
	out := slices.Clone(c.tasks[category])
	if out == nil {
		out = []model.Task{}
	}
	return out
}

// AllTasks returns morning tasks followed by evening tasks.
func (c *Chart) AllTasks() []model.Task {
	out := []model.Task{}
	for _, cat := range model.Categories {
		out = append(out, c.tasks[cat]...)
	}
	return out
}

// Task looks up a task by id.
func (c *Chart) Task(id string) (model.Task, bool) {
	cat, i := c.findTask(id)
	if i < 0 {
		return model.Task{}, false
	}
	return c.tasks[cat][i], true
}

func (c *Chart) findTask(id string) (model.Category, int) {
	for _, cat := range model.Categories {
		if i := slices.IndexFunc(c.tasks[cat], func(t model.Task) bool { return t.ID == id }); i >= 0 {
			return cat, i
		}
	}
	return "", -1
}

// AddTask appends a task with a fresh id and no illustration to the end of
// its category.
func (c *Chart) AddTask(title string, category model.Category) (model.Task, error) {
	if !category.Valid() {
		return model.Task{}, ErrInvalidCategory
	}
	t := model.Task{
		ID:       c.newID("task"),
		Title:    title,
		Category: category,
	}
	c.tasks[category] = append(c.tasks[category], t)
	return t, nil
}

func (c *Chart) RemoveTask(id string) {
	cat, i := c.findTask(id)
	if i < 0 {
		return
	}
	c.tasks[cat] = slices.Delete(c.tasks[cat], i, i+1)
}

func (c *Chart) RenameTask(id, title string) {
	cat, i := c.findTask(id)
	if i < 0 {
		return
	}
	c.tasks[cat][i].Title = title
}

// ReorderTask moves id to sit immediately before beforeID. Both tasks must
// belong to category; a drop onto another category's list changes nothing.
func (c *Chart) ReorderTask(id, beforeID string, category model.Category) {
	dragCat, _ := c.findTask(id)
	targetCat, _ := c.findTask(beforeID)
	if dragCat != category || targetCat != category || dragCat == "" {
		return
	}
	c.tasks[category] = moveBefore(c.tasks[category], id, beforeID, func(t model.Task) string { return t.ID })
}

// SetTaskIllustration records the outcome of an illustration request.
func (c *Chart) SetTaskIllustration(id, ref string, status model.IllustrationStatus) {
	cat, i := c.findTask(id)
	if i < 0 {
		return
	}
	c.tasks[cat][i].IllustrationRef = ref
	c.tasks[cat][i].IllustrationStatus = status
}
