package domain

import "time"

// GameStatus - game session state
type GameStatus string

const (
	GameActive   GameStatus = "active"
	GameFinished GameStatus = "finished"
)

// WinnerColor resolves to a player id at finish time; empty means draw.
type WinnerColor string

const (
	WinnerWhite WinnerColor = "white"
	WinnerBlack WinnerColor = "black"
	WinnerNone  WinnerColor = ""
)

// Game - one session from acceptance to finish. White is always the
// challenger, black the accepting opponent.
type Game struct {
	ID         int64      `db:"id" json:"id"`
	WhiteID    int64      `db:"white_id" json:"white_id"`
	BlackID    int64      `db:"black_id" json:"black_id"`
	Status     GameStatus `db:"status" json:"status"`
	WinnerID   *int64     `db:"winner_id" json:"winner_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	StartedAt  *time.Time `db:"started_at" json:"started_at,omitempty"`
	FinishedAt *time.Time `db:"finished_at" json:"finished_at,omitempty"`
}

// Result returns win/lose/draw from the given player's perspective.
func (g *Game) Result(userID int64) string {
	if g.WinnerID == nil {
		return "draw"
	}
	if *g.WinnerID == userID {
		return "win"
	}
	return "lose"
}
