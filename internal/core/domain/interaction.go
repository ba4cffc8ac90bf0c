package domain

import (
	"errors"
	"time"
)

// InteractionType is the kind of logged customer activity.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
	InteractionNote    InteractionType = "note"
)

// InteractionPriority orders interactions by urgency.
type InteractionPriority string

const (
	PriorityLow    InteractionPriority = "low"
	PriorityMedium InteractionPriority = "medium"
	PriorityHigh   InteractionPriority = "high"
)

// InteractionStatus is the scheduling state of an interaction.
type InteractionStatus string

const (
	StatusScheduled InteractionStatus = "scheduled"
	StatusCompleted InteractionStatus = "completed"
	StatusCancelled InteractionStatus = "cancelled"
	StatusSent      InteractionStatus = "sent"
)

var ErrInteractionNotFound = errors.New("interaction not found")
var ErrForbidden = errors.New("access forbidden")
var ErrNotParticipant = errors.New("not a participant of this interaction")

func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionNote:
		return true
	}
	return false
}

func (p InteractionPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (s InteractionStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusSent:
		return true
	}
	return false
}

// Interaction is a typed activity linked to a contact. Deletion is restricted
// to the creating user; messages require participant membership.
type Interaction struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Type        InteractionType     `json:"type"`
	Description string              `json:"description,omitempty"`
	ContactID   int64               `json:"contact_id"`
	ScheduledAt *time.Time          `json:"scheduled_at,omitempty"`
	DurationMin *int                `json:"duration_min,omitempty"`
	Priority    InteractionPriority `json:"priority"`
	Status      InteractionStatus   `json:"status"`
	Notes       string              `json:"notes,omitempty"`
	CreatedBy   int64               `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Denormalized contact fields populated by list/detail queries.
	ContactFirstName string `json:"first_name,omitempty"`
	ContactLastName  string `json:"last_name,omitempty"`
	ContactCompany   string `json:"company,omitempty"`
}

// Participant links a user to an interaction thread.
type Participant struct {
	InteractionID     int64  `json:"interaction_id"`
	UserID            int64  `json:"user_id"`
	RoleInInteraction string `json:"role_in_interaction,omitempty"`
}
