package model

import "time"

// Profile holds optional personal details. Each user has at most one.
type Profile struct {
	ID           int64
	OwnerID      string
	Username     string
	Gender       string
	EmailAddress string
	Birthday     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePatch carries the fields supplied to an upsert. Nil means unchanged.
type ProfilePatch struct {
	Gender       *string
	EmailAddress *string
	Birthday     *string
}
