package model

import "time"

// ShippingAddress is a delivery address owned by a user.
type ShippingAddress struct {
	ID            int64
	OwnerID       string
	Username      string
	Region        string
	Number        string
	StreetAddress string
	LandMark      string
	Province      string
	City          string
	ZipCode       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ShippingPatch holds the fields of a partial address update. Nil means unchanged.
type ShippingPatch struct {
	Region        *string
	Number        *string
	StreetAddress *string
	LandMark      *string
	Province      *string
	City          *string
	ZipCode       *string
}
