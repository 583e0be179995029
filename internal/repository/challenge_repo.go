package repository

import (
	"context"

	"github.com/YeldosQoja/Chess-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChallengeRepository struct {
	db *pgxpool.Pool
}

func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) Create(ctx context.Context, ch *domain.Challenge) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO challenges (sender_id, receiver_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		ch.SenderID,
		ch.ReceiverID,
		domain.ChallengePending,
	).Scan(&ch.ID, &ch.CreatedAt)
}

func (r *ChallengeRepository) GetByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	var ch domain.Challenge
	err := r.db.QueryRow(ctx,
		`SELECT id, sender_id, receiver_id, status, created_at
		 FROM challenges
		 WHERE id = $1`,
		id,
	).Scan(&ch.ID, &ch.SenderID, &ch.ReceiverID, &ch.Status, &ch.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// SetStatus moves a challenge out of Pending. The WHERE clause keeps the
// row transition atomic; false means the challenge was not Pending anymore.
func (r *ChallengeRepository) SetStatus(ctx context.Context, id int64, status domain.ChallengeStatus) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE challenges SET status = $1
		 WHERE id = $2 AND status = $3`,
		status, id, domain.ChallengePending,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}
