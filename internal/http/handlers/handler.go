package handlers

import (
	"errors"
	"net/http"

	"github.com/YeldosQoja/Chess-backend/internal/repository"
	"github.com/YeldosQoja/Chess-backend/internal/service"
	"github.com/YeldosQoja/Chess-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB         *pgxpool.Pool
	Users      *repository.UserRepository
	Friends    *repository.FriendRepository
	Games      *service.GameService
	Challenges *service.ChallengeService
	Registry   *ws.Registry
	Hub        *ws.Hub

	AllowedOrigin string
}

func NewHandler(db *pgxpool.Pool, registry *ws.Registry, hub *ws.Hub, allowedOrigin string) *Handler {
	games := service.NewGameService(repository.NewGameRepository(db))
	return &Handler{
		DB:            db,
		Users:         repository.NewUserRepository(db),
		Friends:       repository.NewFriendRepository(db),
		Games:         games,
		Challenges:    service.NewChallengeService(repository.NewChallengeRepository(db), games, registry, registry),
		Registry:      registry,
		Hub:           hub,
		AllowedOrigin: allowedOrigin,
	}
}

// getUserID pulls the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	uid, ok := uidVal.(int64)
	return uid, ok
}

// fail maps the service error taxonomy onto HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOnline),
		errors.Is(err, service.ErrAlreadyPlaying),
		errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
