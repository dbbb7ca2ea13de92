package standards

import "time"

type Standard struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type LibraryControl struct {
	ID                        string    `json:"id"`
	StandardID                string    `json:"standardId"`
	Code                      string    `json:"code"`
	Title                     string    `json:"title"`
	Description               string    `json:"description,omitempty"`
	DefaultReviewIntervalDays int       `json:"defaultReviewIntervalDays"`
	CreatedAt                 time.Time `json:"createdAt"`
}
