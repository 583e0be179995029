package domain

import "time"

// ChallengeStatus - challenge state, Pending is the only non-terminal one
type ChallengeStatus string

const (
	ChallengePending  ChallengeStatus = "pending"
	ChallengeAccepted ChallengeStatus = "accepted"
	ChallengeDeclined ChallengeStatus = "declined"
)

// Challenge is a proposal from sender to receiver to start a game.
// It transitions from Pending to exactly one terminal state and is
// never reopened.
type Challenge struct {
	ID         int64           `db:"id" json:"id"`
	SenderID   int64           `db:"sender_id" json:"sender_id"`
	ReceiverID int64           `db:"receiver_id" json:"receiver_id"`
	Status     ChallengeStatus `db:"status" json:"status"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
