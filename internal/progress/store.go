// Package progress persists weekly check-off records in a string key-value
// medium. Durability is best effort: a record that cannot be read is
// treated as missing.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dukerupert/chartmaker/internal/model"
)

// KV is the durable medium behind the store.
type KV interface {
	// Get returns ok=false when key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type Store struct {
	kv     KV
	logger *slog.Logger
}

func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Key returns the medium key holding childKey's record.
func Key(childKey string) string {
	return childKey + "-week"
}

// Load returns the stored record for childKey. ok is false when there is no
// usable record, including medium errors and corrupt payloads.
func (s *Store) Load(ctx context.Context, childKey string) (model.WeekProgress, bool) {
	raw, ok, err := s.kv.Get(ctx, Key(childKey))
	if err != nil {
		s.logger.Warn("read progress", "child", childKey, "error", err)
		return model.WeekProgress{}, false
	}
	if !ok {
		return model.WeekProgress{}, false
	}

	p, err := Decode(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable progress", "child", childKey, "error", err)
		return model.WeekProgress{}, false
	}
	return p, true
}

// Save overwrites childKey's record.
func (s *Store) Save(ctx context.Context, childKey string, p model.WeekProgress) error {
	raw, err := Encode(p)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, Key(childKey), raw); err != nil {
		return fmt.Errorf("save progress for %q: %w", childKey, err)
	}
	return nil
}

// Encode serializes a record field for field.
func Encode(p model.WeekProgress) (string, error) {
	if p.TaskChecks == nil {
		p.TaskChecks = map[string][]bool{}
	}
	if p.ChoreChecks == nil {
		p.ChoreChecks = map[string][]bool{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode progress: %w", err)
	}
	return string(data), nil
}

// Decode parses a record written by Encode. Check arrays are normalised to
// model.DaysPerWeek entries.
func Decode(raw string) (model.WeekProgress, error) {
	var p model.WeekProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.WeekProgress{}, fmt.Errorf("decode progress: %w", err)
	}
	if p.WeekStart == "" {
		return model.WeekProgress{}, fmt.Errorf("decode progress: missing week_start")
	}
	p.TaskChecks = normalise(p.TaskChecks)
	p.ChoreChecks = normalise(p.ChoreChecks)
	return p, nil
}

func normalise(m map[string][]bool) map[string][]bool {
	out := make(map[string][]bool, len(m))
	for id := range m {
		out[id] = model.Checks(m, id)
	}
	return out
}
