package domain

import "time"

const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
)

// SignupDecision is the record published after each pre-signup invocation.
type SignupDecision struct {
	EventID       string    `json:"event_id"`
	UserPoolID    string    `json:"user_pool_id"`
	UserName      string    `json:"user_name"`
	TriggerSource string    `json:"trigger_source"`
	Email         string    `json:"email"`
	Outcome       string    `json:"outcome"` // "approved" | "rejected"
	Reason        string    `json:"reason,omitempty"`
	DecidedAt     time.Time `json:"decided_at"`
}
