package repository

import (
	"context"

	"github.com/YeldosQoja/Chess-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FriendRepository struct {
	db *pgxpool.Pool
}

func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{db: db}
}

// ListFriends returns all users the given user has a friendship with.
func (r *FriendRepository) ListFriends(ctx context.Context, userID int64) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.user_a_id = $1 THEN f.user_b_id ELSE f.user_a_id END
		 WHERE f.user_a_id = $1 OR f.user_b_id = $1
		 ORDER BY u.username`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

// ListRequests returns active requests addressed to the user.
func (r *FriendRepository) ListRequests(ctx context.Context, userID int64) ([]*domain.FriendRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, receiver_id, is_active, created_at
		 FROM friend_requests
		 WHERE receiver_id = $1 AND is_active
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.FriendRequest
	for rows.Next() {
		var fr domain.FriendRequest
		if err := rows.Scan(&fr.ID, &fr.SenderID, &fr.ReceiverID, &fr.IsActive, &fr.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &fr)
	}
	return res, rows.Err()
}

func (r *FriendRepository) CreateRequest(ctx context.Context, fr *domain.FriendRequest) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO friend_requests (sender_id, receiver_id)
		 VALUES ($1, $2)
		 RETURNING id, is_active, created_at`,
		fr.SenderID,
		fr.ReceiverID,
	).Scan(&fr.ID, &fr.IsActive, &fr.CreatedAt)
}

// AcceptRequest deactivates the request and creates the friendship row in
// one transaction, returning the (possibly pre-existing) friendship.
func (r *FriendRepository) AcceptRequest(ctx context.Context, senderID, receiverID int64) (*domain.Friendship, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`UPDATE friend_requests SET is_active = FALSE
		 WHERE sender_id = $1 AND receiver_id = $2 AND is_active`,
		senderID, receiverID,
	)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNoRequest
	}

	a, b := senderID, receiverID
	if a > b {
		a, b = b, a
	}
	// the no-op DO UPDATE makes the conflicting row visible to RETURNING
	var f domain.Friendship
	if err := tx.QueryRow(ctx,
		`INSERT INTO friendships (user_a_id, user_b_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET user_a_id = EXCLUDED.user_a_id
		 RETURNING id, user_a_id, user_b_id, created_at`,
		a, b,
	).Scan(&f.ID, &f.UserAID, &f.UserBID, &f.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendRepository) DeclineRequest(ctx context.Context, senderID, receiverID int64) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE friend_requests SET is_active = FALSE
		 WHERE sender_id = $1 AND receiver_id = $2 AND is_active`,
		senderID, receiverID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoRequest
	}
	return nil
}

func (r *FriendRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	a, b := userID, friendID
	if a > b {
		a, b = b, a
	}
	ct, err := r.db.Exec(ctx,
		`DELETE FROM friendships WHERE user_a_id = $1 AND user_b_id = $2`,
		a, b,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoFriendship
	}
	return nil
}

// IsFriend reports whether a symmetric friendship exists. Available to
// callers but not consulted by challenge negotiation.
func (r *FriendRepository) IsFriend(ctx context.Context, userID, otherID int64) (bool, error) {
	a, b := userID, otherID
	if a > b {
		a, b = b, a
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE user_a_id = $1 AND user_b_id = $2)`,
		a, b,
	).Scan(&exists)
	return exists, err
}
