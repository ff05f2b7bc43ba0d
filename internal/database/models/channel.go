package models

import "time"

// Channel represents a cached platform channel.
// Title and Thumbnail are nil until a value has been observed.
type Channel struct {
	ID         string
	Title      *string
	Thumbnail  *string
	SavedAt    time.Time
	LastUsedAt time.Time
}
