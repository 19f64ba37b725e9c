package model

// Chart is the persisted snapshot of one child's chart. Task order within a
// category and chore order are significant.
type Chart struct {
	ChildName  string     `json:"child_name"`
	Tasks      []Task     `json:"tasks"`
	Chores     []Chore    `json:"chores"`
	RewardGoal RewardGoal `json:"reward_goal"`
}
