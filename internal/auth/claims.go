package auth

import "time"

// Claims is what a verified access token says about its bearer.
type Claims struct {
	UserID    int64
	Username  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
