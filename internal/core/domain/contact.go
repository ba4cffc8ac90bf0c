package domain

import (
	"errors"
	"time"
)

// ContactStatus represents the lifecycle state of a contact.
type ContactStatus string

const (
	ContactProspect ContactStatus = "prospect"
	ContactActive   ContactStatus = "active"
	ContactInactive ContactStatus = "inactive"
)

var ErrContactNotFound = errors.New("contact not found")
var ErrDuplicateEmail = errors.New("email already exists")

// IsValid reports whether the status is a known enum value.
func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactProspect, ContactActive, ContactInactive:
		return true
	}
	return false
}

// Contact is a globally shared CRM record; it is not owned by any user.
type Contact struct {
	ID            int64         `json:"id"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Company       string        `json:"company,omitempty"`
	Address       string        `json:"address,omitempty"`
	Status        ContactStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	LastContactAt *time.Time    `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
