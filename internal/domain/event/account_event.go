package event

import "time"

type Type string

const (
	AccountCreated Type = "account.created"
	AccountUpdated Type = "account.updated"
	AccountDeleted Type = "account.deleted"
)

// AccountEvent is the JSON payload put on the account events queue.
type AccountEvent struct {
	Type       Type      `json:"type"`
	AccountID  int64     `json:"account_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
