package model

// Chore is a paid job on the chart. Value is free-form ("50p", "$1") and is
// never parsed.
type Chore struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Value              string             `json:"value"`
	IllustrationRef    string             `json:"illustration_ref,omitempty"`
	IllustrationStatus IllustrationStatus `json:"illustration_status,omitempty"`
}

// ChoreField names an editable chore field.
type ChoreField string

const (
	ChoreFieldTitle ChoreField = "title"
	ChoreFieldValue ChoreField = "value"
)

func (f ChoreField) Valid() bool {
	return f == ChoreFieldTitle || f == ChoreFieldValue
}
