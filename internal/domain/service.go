package domain

import "time"

// Service car wash service from the catalogue
type Service struct {
	ID              int64
	Name            string
	Price           int
	DurationMinutes int
	Description     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
