package repository

import (
	"context"
	"time"

	"github.com/YeldosQoja/Chess-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GameRepository struct {
	db *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(ctx context.Context, g *domain.Game) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO games (white_id, black_id, status, started_at)
		 VALUES ($1, $2, $3, now())
		 RETURNING id, created_at, started_at`,
		g.WhiteID,
		g.BlackID,
		domain.GameActive,
	).Scan(&g.ID, &g.CreatedAt, &g.StartedAt)
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	var g domain.Game
	err := r.db.QueryRow(ctx,
		`SELECT id, white_id, black_id, status, winner_id, created_at, started_at, finished_at
		 FROM games
		 WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.WhiteID, &g.BlackID, &g.Status, &g.WinnerID, &g.CreatedAt, &g.StartedAt, &g.FinishedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// HasActive reports whether the user participates in any active game.
func (r *GameRepository) HasActive(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM games
			WHERE status = $1 AND (white_id = $2 OR black_id = $2)
		 )`,
		domain.GameActive, userID,
	).Scan(&exists)
	return exists, err
}

// Finish records the outcome. No guard against a row that is already
// finished; the last write wins.
func (r *GameRepository) Finish(ctx context.Context, id int64, winnerID *int64, finishedAt time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE games SET status = $1, winner_id = $2, finished_at = $3
		 WHERE id = $4`,
		domain.GameFinished, winnerID, finishedAt, id,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// ListByUser returns the user's games, newest first.
func (r *GameRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Game, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, white_id, black_id, status, winner_id, created_at, started_at, finished_at
		 FROM games
		 WHERE white_id = $1 OR black_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Game
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(&g.ID, &g.WhiteID, &g.BlackID, &g.Status, &g.WinnerID,
			&g.CreatedAt, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, err
		}
		res = append(res, &g)
	}
	return res, rows.Err()
}

// UserStats - aggregate over the user's finished games
type UserStats struct {
	UserID     int64 `json:"user_id"`
	TotalGames int   `json:"total_games"`
	Wins       int   `json:"wins"`
	Losses     int   `json:"losses"`
	Draws      int   `json:"draws"`
}

func (r *GameRepository) GetUserStats(ctx context.Context, userID int64) (*UserStats, error) {
	stats := &UserStats{UserID: userID}

	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) as total_games,
			COUNT(*) FILTER (WHERE winner_id = $1) as wins,
			COUNT(*) FILTER (WHERE winner_id IS NOT NULL AND winner_id <> $1) as losses,
			COUNT(*) FILTER (WHERE winner_id IS NULL) as draws
		 FROM games
		 WHERE status = $2 AND (white_id = $1 OR black_id = $1)`,
		userID, domain.GameFinished,
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses, &stats.Draws)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
