package models

import "time"

// Questionnaire is the summary the listing and detail endpoints return.
type Questionnaire struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Public      bool      `json:"public"`
	OwnerID     int64     `json:"ownerId"`
	Responses   int       `json:"responses"`
	CreatedAt   time.Time `json:"createdAt"`
}
