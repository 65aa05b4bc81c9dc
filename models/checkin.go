package models

import "time"

// CheckinSession is one attendance window. Token is the opaque payload the
// client renders as a QR code; the server only ever sees it back as a string.
type CheckinSession struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Token     string     `json:"token"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	ClosesAt  *time.Time `json:"closes_at,omitempty"`
}

type Attendance struct {
	ID          int       `json:"id"`
	SessionID   int       `json:"session_id"`
	UserID      int       `json:"user_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}
