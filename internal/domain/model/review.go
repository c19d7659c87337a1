package model

import "time"

// Review is a rated text review written by a user.
type Review struct {
	ID        int64
	OwnerID   string
	Username  string
	Text      string
	Rating    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewPatch holds the fields of a partial review update. Nil means unchanged.
type ReviewPatch struct {
	Text   *string
	Rating *int
}
