// Package models provides domain models for the goUserDirectory service.
package models

import "time"

// User statuses. A user is created active and can transition to deleted
// exactly once; deleted is terminal.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// User represents a single directory record. Review is an opaque blob the
// directory passes through unmodified. Status is never serialized: only
// active records are visible through the read endpoints, so the field
// would always carry the same value on the wire.
type User struct {
	ID        int64     `json:"id"`
	Fname     string    `json:"fname"`
	Lname     string    `json:"lname"`
	Email     string    `json:"email"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"-"`
}

// IsActive reports whether the record is visible through read endpoints.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
