package model

import "time"

// Child identifies one chart. Key is the url-safe handle used for storage.
type Child struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Age       string    `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
