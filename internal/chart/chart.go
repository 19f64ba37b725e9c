// Package chart holds the mutable task and chore lists for one child's chart.
//
// Every operation addressing an id that is not on the chart is a silent
// no-op: drag-and-drop and concurrent UI updates race harmlessly against
// removals, so a missing id is never an error.
package chart

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/dukerupert/chartmaker/internal/model"
)

var ErrInvalidCategory = errors.New("invalid task category")

// Chart is the single authoritative copy of a chart. Views derive from it
// through the accessors, which return copies.
type Chart struct {
	childName  string
	tasks      map[model.Category][]model.Task
	chores     []model.Chore
	rewardGoal model.RewardGoal
	newID      func(prefix string) string
}

// Option configures a Chart.
type Option func(*Chart)

// WithIDFunc replaces the id generator. The prefix is "task" or "chore".
func WithIDFunc(fn func(prefix string) string) Option {
	return func(c *Chart) { c.newID = fn }
}

func New(childName string, opts ...Option) *Chart {
	c := &Chart{
		childName: childName,
		tasks:     make(map[model.Category][]model.Task),
		newID:     defaultID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// FromSnapshot rebuilds a chart from its persisted form. Tasks with an
// unknown category are dropped.
func FromSnapshot(s model.Chart, opts ...Option) *Chart {
	c := New(s.ChildName, opts...)
	for _, t := range s.Tasks {
		if !t.Category.Valid() {
			continue
		}
		c.tasks[t.Category] = append(c.tasks[t.Category], t)
	}
	c.chores = slices.Clone(s.Chores)
	c.rewardGoal = s.RewardGoal
	return c
}

// Snapshot returns the persisted form: morning tasks, then evening tasks,
// then chores, each in display order.
func (c *Chart) Snapshot() model.Chart {
	chores := slices.Clone(c.chores)
	if chores == nil {
		chores = []model.Chore{}
	}
	return model.Chart{
		ChildName:  c.childName,
		Tasks:      c.AllTasks(),
		Chores:     chores,
		RewardGoal: c.rewardGoal,
	}
}

func (c *Chart) ChildName() string { return c.childName }

func (c *Chart) SetChildName(name string) { c.childName = name }

func (c *Chart) RewardGoal() model.RewardGoal { return c.rewardGoal }

// SetRewardGoal replaces the whole goal.
func (c *Chart) SetRewardGoal(goal model.RewardGoal) { c.rewardGoal = goal }
