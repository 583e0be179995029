package http

import (
	"time"

	"github.com/YeldosQoja/Chess-backend/internal/config"
	"github.com/YeldosQoja/Chess-backend/internal/http/handlers"
	"github.com/YeldosQoja/Chess-backend/internal/http/middleware"
	"github.com/YeldosQoja/Chess-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	registry := ws.NewRegistry()
	hub := ws.NewHub()
	h := handlers.NewHandler(db, registry, hub, cfg.AllowedOrigin)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, cfg.AuthRateLimit, authRateWindow)

	// Legacy /api routes kept for backward compatibility
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	registerAPIRoutes(api, h, cfg.AuthRateLimit, authRateWindow)

	// WebSocket endpoints: presence/notifications and per-game relay
	r.GET("/ws", h.PresenceWS)
	r.GET("/ws/game/:room", h.GameWS)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, authRateLimit int, authRateWindow time.Duration) {
	authRL := middleware.RedisRateLimit(authRateLimit, authRateWindow)

	// Auth
	api.POST("/auth/signup", authRL, h.Signup)
	api.POST("/auth/signin", authRL, h.Signin)

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/profile/:id", h.Profile)

	// Friends
	friends := api.Group("/friends")
	friends.Use(middleware.JWT())
	{
		friends.GET("", h.ListFriends)
		friends.GET("/requests", h.ListFriendRequests)
		friends.POST("/add", h.AddFriend)
		friends.POST("/accept", h.AcceptFriend)
		friends.POST("/decline", h.DeclineFriend)
		friends.DELETE("/remove", h.RemoveFriend)
	}

	// Challenges and games
	game := api.Group("/game")
	game.Use(middleware.JWT())
	{
		game.POST("/challenge/send", h.SendChallenge)
		game.POST("/challenge/accept", h.AcceptChallenge)
		game.POST("/challenge/decline", h.DeclineChallenge)
		game.POST("/finish", h.FinishGame)
		game.GET("/:id/room", h.GameRoom)
	}

	api.GET("/me/games", middleware.JWT(), h.MyGames)
}
