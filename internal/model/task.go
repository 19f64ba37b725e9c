package model

// Category partitions tasks into two independently ordered lists.
type Category string

const (
	CategoryMorning Category = "morning"
	CategoryEvening Category = "evening"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryMorning, CategoryEvening}

func (c Category) Valid() bool {
	return c == CategoryMorning || c == CategoryEvening
}

type Task struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Category           Category           `json:"category"`
	IllustrationRef    string             `json:"illustration_ref,omitempty"`
	IllustrationStatus IllustrationStatus `json:"illustration_status,omitempty"`
}

// IllustrationStatus tracks an outstanding request to the asset provider.
// The zero value means no illustration was ever requested.
type IllustrationStatus string

const (
	IllustrationPending    IllustrationStatus = "pending"
	IllustrationGenerating IllustrationStatus = "generating"
	IllustrationCompleted  IllustrationStatus = "completed"
	IllustrationFailed     IllustrationStatus = "failed"
)
