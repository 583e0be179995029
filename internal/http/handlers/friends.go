package handlers

import (
	"errors"
	"net/http"

	"github.com/YeldosQoja/Chess-backend/internal/domain"
	"github.com/YeldosQoja/Chess-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

type friendRequestBody struct {
	Friend int64 `json:"friend" binding:"required"`
}

func (h *Handler) ListFriends(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	friends, err := h.Friends.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list friends"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

func (h *Handler) ListFriendRequests(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	requests, err := h.Friends.ListRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) AddFriend(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req friendRequestBody
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "friend id required"})
		return
	}
	if req.Friend == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot befriend yourself"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Users.GetByID(ctx, req.Friend); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	fr := &domain.FriendRequest{SenderID: userID, ReceiverID: req.Friend}
	if err := h.Friends.CreateRequest(ctx, fr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to send friend request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": fr})
}

func (h *Handler) AcceptFriend(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req friendRequestBody
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "friend id required"})
		return
	}

	friendship, err := h.Friends.AcceptRequest(c.Request.Context(), req.Friend, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRequest) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending request from this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"friendship": friendship})
}

func (h *Handler) DeclineFriend(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req friendRequestBody
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "friend id required"})
		return
	}

	if err := h.Friends.DeclineRequest(c.Request.Context(), req.Friend, userID); err != nil {
		if errors.Is(err, repository.ErrNoRequest) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending request from this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decline request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req friendRequestBody
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "friend id required"})
		return
	}

	if err := h.Friends.RemoveFriend(c.Request.Context(), userID, req.Friend); err != nil {
		if errors.Is(err, repository.ErrNoFriendship) {
			c.JSON(http.StatusNotFound, gin.H{"error": "friendship not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove friend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friendship is broken"})
}
