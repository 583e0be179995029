package service

import (
	"context"
	"errors"

	"github.com/YeldosQoja/Chess-backend/internal/domain"
	"github.com/YeldosQoja/Chess-backend/internal/logger"
	"github.com/YeldosQoja/Chess-backend/internal/ws"

	"github.com/jackc/pgx/v5"
)

// ChallengeStore is the slice of the durable store negotiation needs.
type ChallengeStore interface {
	Create(ctx context.Context, ch *domain.Challenge) error
	GetByID(ctx context.Context, id int64) (*domain.Challenge, error)
	SetStatus(ctx context.Context, id int64, status domain.ChallengeStatus) (bool, error)
}

// Presence answers "does this user have a live connection".
type Presence interface {
	Online(userID int64) bool
}

// Notifier pushes one event to one user's connection, best effort.
type Notifier interface {
	Notify(userID int64, event any) bool
}

// ChallengeService runs the Pending → Accepted | Declined state machine.
// Friendship is not consulted here; anyone online can be challenged.
type ChallengeService struct {
	challenges ChallengeStore
	games      *GameService
	presence   Presence
	notifier   Notifier
}

func NewChallengeService(challenges ChallengeStore, games *GameService, presence Presence, notifier Notifier) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		games:      games,
		presence:   presence,
		notifier:   notifier,
	}
}

// Send creates a pending challenge and notifies the receiver.
func (s *ChallengeService) Send(ctx context.Context, senderID, receiverID int64) (*domain.Challenge, error) {
	if !s.presence.Online(receiverID) {
		return nil, ErrNotOnline
	}

	playing, err := s.games.IsPlaying(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if playing {
		return nil, ErrAlreadyPlaying
	}

	ch := &domain.Challenge{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.ChallengePending,
	}
	if err := s.challenges.Create(ctx, ch); err != nil {
		return nil, err
	}

	s.notifier.Notify(receiverID, ws.ChallengeEvent{
		Type:      ws.EventChallenge,
		RequestID: ch.ID,
		From:      senderID,
	})

	logger.Info("challenge sent", "challenge_id", ch.ID, "sender_id", senderID, "receiver_id", receiverID)
	return ch, nil
}

// Accept moves the challenge to its Accepted terminal state, creates the
// game (challenger plays white) and notifies the original sender.
func (s *ChallengeService) Accept(ctx context.Context, challengeID, actingUserID int64) (*domain.Game, error) {
	ch, err := s.get(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch.Status != domain.ChallengePending {
		return nil, ErrInvalidTransition
	}
	if ch.ReceiverID != actingUserID {
		return nil, ErrForbidden
	}
	// the sender may have disconnected while the challenge sat pending
	if !s.presence.Online(ch.SenderID) {
		return nil, ErrNotOnline
	}

	ok, err := s.challenges.SetStatus(ctx, challengeID, domain.ChallengeAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race against a concurrent accept/decline
		return nil, ErrInvalidTransition
	}

	game, err := s.games.Create(ctx, ch.SenderID, actingUserID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ch.SenderID, ws.ChallengeAcceptedEvent{
		Type:   ws.EventChallengeAccepted,
		GameID: game.ID,
		Room:   ws.RoomName(game.WhiteID, game.BlackID, game.ID),
	})

	logger.Info("challenge accepted", "challenge_id", challengeID, "game_id", game.ID)
	return game, nil
}

// Decline moves the challenge to its Declined terminal state. The sender
// is not notified; they find out when they try again.
func (s *ChallengeService) Decline(ctx context.Context, challengeID, actingUserID int64) error {
	ch, err := s.get(ctx, challengeID)
	if err != nil {
		return err
	}
	if ch.Status != domain.ChallengePending {
		return ErrInvalidTransition
	}
	if ch.ReceiverID != actingUserID {
		return ErrForbidden
	}

	ok, err := s.challenges.SetStatus(ctx, challengeID, domain.ChallengeDeclined)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}

	logger.Info("challenge declined", "challenge_id", challengeID)
	return nil
}

func (s *ChallengeService) get(ctx context.Context, id int64) (*domain.Challenge, error) {
	ch, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ch, nil
}
