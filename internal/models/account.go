// Package models defines the records returned by the account store.
package models

import "time"

// Account is one result row of an account lookup, returned verbatim from the store.
type Account struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Role      string    `json:"role"`
}
