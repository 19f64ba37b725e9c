package model

// DaysPerWeek is the length of every check array. Index 0 is Monday.
const DaysPerWeek = 7

// WeekProgress holds the check-off state for one child for one week.
// Ids missing from either map are all-false.
type WeekProgress struct {
	WeekStart   string            `json:"week_start"`
	TaskChecks  map[string][]bool `json:"task_checks"`
	ChoreChecks map[string][]bool `json:"chore_checks"`
}

// NewWeekProgress returns an empty record stamped with weekStart.
func NewWeekProgress(weekStart string) WeekProgress {
	return WeekProgress{
		WeekStart:   weekStart,
		TaskChecks:  make(map[string][]bool),
		ChoreChecks: make(map[string][]bool),
	}
}

// Checks returns a copy of the array for id in m, or seven false values.
func Checks(m map[string][]bool, id string) []bool {
	out := make([]bool, DaysPerWeek)
	copy(out, m[id])
	return out
}

// Clone returns a deep copy so callers can mutate without aliasing a stored record.
func (p WeekProgress) Clone() WeekProgress {
	out := NewWeekProgress(p.WeekStart)
	for id, days := range p.TaskChecks {
		out.TaskChecks[id] = append([]bool(nil), days...)
	}
	for id, days := range p.ChoreChecks {
		out.ChoreChecks[id] = append([]bool(nil), days...)
	}
	return out
}
