package model

// RewardGoal is what the child is saving chore money towards. Amounts are
// free-form strings and may be empty.
type RewardGoal struct {
	Name           string `json:"name"`
	TargetAmount   string `json:"target_amount"`
	CurrencySymbol string `json:"currency_symbol"`
}

// WeekSummary counts checked boxes for the current week.
type WeekSummary struct {
	WeekStart     string `json:"week_start"`
	TaskChecks    int    `json:"task_checks"`
	TaskSlots     int    `json:"task_slots"`
	ChoreChecks   int    `json:"chore_checks"`
	ChoreSlots    int    `json:"chore_slots"`
	DaysCompleted int    `json:"days_completed"`
}
