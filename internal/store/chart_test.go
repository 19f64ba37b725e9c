package store

import (
	"reflect"
	"testing"

	"github.com/dukerupert/chartmaker/internal/model"
)

func sampleChart() model.Chart {
	return model.Chart{
		ChildName: "Sam",
		Tasks: []model.Task{
			{ID: "task-1", Title: "Brush Teeth", Category: model.CategoryMorning},
			{ID: "task-2", Title: "Get Dressed", Category: model.CategoryMorning, IllustrationRef: "img://dress", IllustrationStatus: model.IllustrationCompleted},
			{ID: "task-3", Title: "Bath", Category: model.CategoryEvening},
		},
		Chores: []model.Chore{
			{ID: "chore-1", Title: "Feed Cat", Value: "50p"},
			{ID: "chore-2", Title: "Tidy Room", Value: "£1"},
		},
		RewardGoal: model.RewardGoal{Name: "Lego", TargetAmount: "20", CurrencySymbol: "£"},
	}
}

func TestChartGetMissing(t *testing.T) {
	cs := NewChartStore(setupTestDB(t))

	got, err := cs.Get("nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil chart, got %+v", got)
	}
}

func TestChartSaveAndGet(t *testing.T) {
	cs := NewChartStore(setupTestDB(t))
	want := sampleChart()

	if err := cs.Save("sam", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := cs.Get("sam")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("got %+v\nwant %+v", *got, want)
	}
}

func TestChartSaveReplacesOrder(t *testing.T) {
	cs := NewChartStore(setupTestDB(t))
	c := sampleChart()
	if err := cs.Save("sam", c); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Drop a task, swap the chores and rename the child.
	c.ChildName = "Samuel"
	c.Tasks = []model.Task{c.Tasks[1], c.Tasks[0]}
	c.Chores = []model.Chore{c.Chores[1], c.Chores[0]}
	if err := cs.Save("sam", c); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := cs.Get("sam")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ChildName != "Samuel" {
		t.Errorf("child name = %q, want Samuel", got.ChildName)
	}
	if len(got.Tasks) != 2 || got.Tasks[0].ID != "task-2" || got.Tasks[1].ID != "task-1" {
		t.Errorf("tasks = %+v, want task-2, task-1", got.Tasks)
	}
	if got.Chores[0].ID != "chore-2" {
		t.Errorf("first chore = %q, want chore-2", got.Chores[0].ID)
	}
}

func TestChartEmptyListsAreNotNil(t *testing.T) {
	cs := NewChartStore(setupTestDB(t))
	if err := cs.Save("sam", model.Chart{ChildName: "Sam"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := cs.Get("sam")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Tasks == nil || got.Chores == nil {
		t.Errorf("expected empty, non-nil lists: %+v", got)
	}
}

func TestChartsAreScopedPerChild(t *testing.T) {
	cs := NewChartStore(setupTestDB(t))
	if err := cs.Save("sam", sampleChart()); err != nil {
		t.Fatalf("save sam: %v", err)
	}
	// Ids only need to be unique within one chart.
	other := sampleChart()
	other.ChildName = "Alex"
	other.Tasks = other.Tasks[:1]
	if err := cs.Save("alex", other); err != nil {
		t.Fatalf("save alex: %v", err)
	}

	sam, err := cs.Get("sam")
	if err != nil {
		t.Fatalf("get sam: %v", err)
	}
	if len(sam.Tasks) != 3 {
		t.Errorf("sam tasks = %d, want 3", len(sam.Tasks))
	}
}
