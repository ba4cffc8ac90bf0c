package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")
var ErrRateLimited = errors.New("too many messages sent")

// Message is an append-only entry in an interaction thread.
type Message struct {
	ID            int64      `json:"id"`
	InteractionID int64      `json:"interaction_id"`
	SenderID      int64      `json:"sender_id"`
	SenderName    string     `json:"sender_name"`
	Body          string     `json:"body"`
	SentAt        time.Time  `json:"sent_at"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
}
