package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/YeldosQoja/Chess-backend/internal/domain"
	"github.com/YeldosQoja/Chess-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MyGames(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()

	games, err := h.Games.History(ctx, userID, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get games"})
		return
	}

	// annotate each finished game with the outcome from the caller's side
	history := make([]gin.H, 0, len(games))
	for _, g := range games {
		item := gin.H{"game": g}
		if g.Status == domain.GameFinished {
			item["result"] = g.Result(userID)
		}
		history = append(history, item)
	}

	stats, _ := h.Games.Stats(ctx, userID)

	c.JSON(http.StatusOK, gin.H{"games": history, "stats": stats})
}

func (h *Handler) Profile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	stats, _ := h.Games.Stats(ctx, id)

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"created_at": user.CreatedAt,
		"online":     h.Registry.Online(user.ID),
		"stats":      stats,
	})
}

type finishGameRequest struct {
	GameID int64  `json:"game_id" binding:"required"`
	Winner string `json:"winner"` // "white", "black" or empty for a draw
}

func (h *Handler) FinishGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req finishGameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	game, err := h.Games.Finish(c.Request.Context(), req.GameID, userID, domain.WinnerColor(req.Winner), time.Now())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"game": game})
}

// GameRoom lets a client resolve the relay room name for a game it
// participates in.
func (h *Handler) GameRoom(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	game, err := h.Games.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if game.WhiteID != userID && game.BlackID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game": game,
		"room": ws.RoomName(game.WhiteID, game.BlackID, game.ID),
	})
}
