package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/chartmaker/internal/model"
)

type ChildStore struct {
	db *sql.DB
}

func NewChildStore(db *sql.DB) *ChildStore {
	return &ChildStore{db: db}
}

const childCols = `key, name, age, created_at, updated_at`

func scanChild(scanner interface{ Scan(...any) error }) (*model.Child, error) {
	var c model.Child
	if err := scanner.Scan(&c.Key, &c.Name, &c.Age, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert creates the child or updates its name and age.
func (s *ChildStore) Upsert(key, name, age string) (*model.Child, error) {
	_, err := s.db.Exec(
		`INSERT INTO children (key, name, age) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET name = excluded.name, age = excluded.age, updated_at = ?`,
		key, name, age, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert child: %w", err)
	}
	return s.GetByKey(key)
}

func (s *ChildStore) GetByKey(key string) (*model.Child, error) {
	row := s.db.QueryRow(`SELECT `+childCols+` FROM children WHERE key = ?`, key)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	return c, nil
}

func (s *ChildStore) List() ([]model.Child, error) {
	rows, err := s.db.Query(`SELECT ` + childCols + ` FROM children ORDER BY name ASC, key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

// Delete removes the child and its chart rows. Progress records live in the
// kv medium and are left alone.
func (s *ChildStore) Delete(key string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM chart_tasks WHERE child_key = ?`,
		`DELETE FROM chart_chores WHERE child_key = ?`,
		`DELETE FROM reward_goals WHERE child_key = ?`,
		`DELETE FROM children WHERE key = ?`,
	} {
		if _, err := tx.Exec(q, key); err != nil {
			return fmt.Errorf("delete child: %w", err)
		}
	}
	return tx.Commit()
}
