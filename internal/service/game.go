package service

import (
	"context"
	"errors"
	"time"

	"github.com/YeldosQoja/Chess-backend/internal/domain"
	"github.com/YeldosQoja/Chess-backend/internal/repository"

	"github.com/jackc/pgx/v5"
)

// GameStore is the slice of the durable store the game lifecycle needs.
type GameStore interface {
	Create(ctx context.Context, g *domain.Game) error
	GetByID(ctx context.Context, id int64) (*domain.Game, error)
	HasActive(ctx context.Context, userID int64) (bool, error)
	Finish(ctx context.Context, id int64, winnerID *int64, finishedAt time.Time) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Game, error)
	GetUserStats(ctx context.Context, userID int64) (*repository.UserStats, error)
}

// GameService owns the Active→Finished transition and outcome recording.
type GameService struct {
	games GameStore
}

func NewGameService(games GameStore) *GameService {
	return &GameService{games: games}
}

// Create starts an active game. The challenger always plays white.
func (s *GameService) Create(ctx context.Context, challengerID, opponentID int64) (*domain.Game, error) {
	g := &domain.Game{
		WhiteID: challengerID,
		BlackID: opponentID,
		Status:  domain.GameActive,
	}
	if err := s.games.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get returns one game row.
func (s *GameService) Get(ctx context.Context, id int64) (*domain.Game, error) {
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// IsPlaying reports whether the user participates in any active game. Used
// as a pre-check at challenge time; it is not a transactional guarantee.
func (s *GameService) IsPlaying(ctx context.Context, userID int64) (bool, error) {
	return s.games.HasActive(ctx, userID)
}

// Finish resolves the winner color to a player id (white is the
// challenger), marks the game finished and records the timestamp. Only a
// participant may finish a game. Finishing an already finished game
// overwrites the recorded outcome.
func (s *GameService) Finish(ctx context.Context, gameID, actingUserID int64, color domain.WinnerColor, finishedAt time.Time) (*domain.Game, error) {
	g, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if g.WhiteID != actingUserID && g.BlackID != actingUserID {
		return nil, ErrForbidden
	}

	var winnerID *int64
	switch color {
	case domain.WinnerWhite:
		winnerID = &g.WhiteID
	case domain.WinnerBlack:
		winnerID = &g.BlackID
	case domain.WinnerNone:
		// draw
	default:
		return nil, ErrInvalidTransition
	}

	ok, err := s.games.Finish(ctx, gameID, winnerID, finishedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	g.Status = domain.GameFinished
	g.WinnerID = winnerID
	g.FinishedAt = &finishedAt
	return g, nil
}

// History returns the user's games, newest first.
func (s *GameService) History(ctx context.Context, userID int64, limit int) ([]*domain.Game, error) {
	return s.games.ListByUser(ctx, userID, limit)
}

// Stats returns the user's win/loss/draw aggregates over finished games.
func (s *GameService) Stats(ctx context.Context, userID int64) (*repository.UserStats, error) {
	return s.games.GetUserStats(ctx, userID)
}
