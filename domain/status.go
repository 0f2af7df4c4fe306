package domain

import "time"

// UserStatus is one online/last-seen record in the directory store.
type UserStatus struct {
	UserID   string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IsOnline bool      `json:"is_online"`
	LastSeen time.Time `json:"last_seen"`
}
