package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendChallengeRequest struct {
	Opponent int64 `json:"opponent" binding:"required"`
}

func (h *Handler) SendChallenge(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req sendChallengeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "opponent id required"})
		return
	}
	if req.Opponent == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot challenge yourself"})
		return
	}

	ch, err := h.Challenges.Send(c.Request.Context(), userID, req.Opponent)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"challenge": ch})
}

type challengeActionRequest struct {
	RequestID int64 `json:"request_id" binding:"required"`
}

func (h *Handler) AcceptChallenge(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req challengeActionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id required"})
		return
	}

	game, err := h.Challenges.Accept(c.Request.Context(), req.RequestID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"game": game})
}

func (h *Handler) DeclineChallenge(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req challengeActionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id required"})
		return
	}

	if err := h.Challenges.Decline(c.Request.Context(), req.RequestID, userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
