package model

import "time"

// Claims is the verified identity carried by a session token.
type Claims struct {
	UserID    string
	Username  string
	Role      Role
	ExpiresAt time.Time
}
