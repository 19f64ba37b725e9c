package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/chartmaker/internal/model"
)

// ChartStore persists chart snapshots. A snapshot is written as a whole: the
// child's task and chore rows are replaced and sort_order is their position.
type ChartStore struct {
	db *sql.DB
}

func NewChartStore(db *sql.DB) *ChartStore {
	return &ChartStore{db: db}
}

const taskCols = `id, title, category, illustration_ref, illustration_status`

const choreCols = `id, title, value, illustration_ref, illustration_status`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := scanner.Scan(&t.ID, &t.Title, &t.Category, &t.IllustrationRef, &t.IllustrationStatus)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	err := scanner.Scan(&c.ID, &c.Title, &c.Value, &c.IllustrationRef, &c.IllustrationStatus)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns the chart for childKey, or nil when the child does not exist.
func (s *ChartStore) Get(childKey string) (*model.Chart, error) {
	var c model.Chart
	err := s.db.QueryRow(`SELECT name FROM children WHERE key = ?`, childKey).Scan(&c.ChildName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chart child: %w", err)
	}

	if c.Tasks, err = s.listTasks(childKey); err != nil {
		return nil, err
	}
	if c.Chores, err = s.listChores(childKey); err != nil {
		return nil, err
	}

	err = s.db.QueryRow(
		`SELECT name, target_amount, currency_symbol FROM reward_goals WHERE child_key = ?`, childKey,
	).Scan(&c.RewardGoal.Name, &c.RewardGoal.TargetAmount, &c.RewardGoal.CurrencySymbol)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("get reward goal: %w", err)
	}
	return &c, nil
}

func (s *ChartStore) listTasks(childKey string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM chart_tasks WHERE child_key = ?
		 ORDER BY CASE category WHEN 'morning' THEN 0 ELSE 1 END, sort_order ASC`,
		childKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *ChartStore) listChores(childKey string) ([]model.Chore, error) {
	rows, err := s.db.Query(
		`SELECT `+choreCols+` FROM chart_chores WHERE child_key = ? ORDER BY sort_order ASC`,
		childKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	chores := []model.Chore{}
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

// Save writes the whole chart for childKey, creating the child if needed.
func (s *ChartStore) Save(childKey string, c model.Chart) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO children (key, name) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET name = excluded.name, updated_at = ?`,
		childKey, c.ChildName, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("upsert child: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM chart_tasks WHERE child_key = ?`, childKey); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	order := map[model.Category]int{}
	for _, t := range c.Tasks {
		if _, err := tx.Exec(
			`INSERT INTO chart_tasks (id, child_key, title, category, illustration_ref, illustration_status, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, childKey, t.Title, t.Category, t.IllustrationRef, t.IllustrationStatus, order[t.Category],
		); err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		order[t.Category]++
	}

	if _, err := tx.Exec(`DELETE FROM chart_chores WHERE child_key = ?`, childKey); err != nil {
		return fmt.Errorf("clear chores: %w", err)
	}
	for i, ch := range c.Chores {
		if _, err := tx.Exec(
			`INSERT INTO chart_chores (id, child_key, title, value, illustration_ref, illustration_status, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			ch.ID, childKey, ch.Title, ch.Value, ch.IllustrationRef, ch.IllustrationStatus, i,
		); err != nil {
			return fmt.Errorf("insert chore: %w", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO reward_goals (child_key, name, target_amount, currency_symbol) VALUES (?, ?, ?, ?)
		 ON CONFLICT(child_key) DO UPDATE SET name = excluded.name, target_amount = excluded.target_amount,
		 currency_symbol = excluded.currency_symbol`,
		childKey, c.RewardGoal.Name, c.RewardGoal.TargetAmount, c.RewardGoal.CurrencySymbol,
	); err != nil {
		return fmt.Errorf("upsert reward goal: %w", err)
	}

	return tx.Commit()
}
