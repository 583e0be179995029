package ws

// client → server, session relay endpoint
const (
	CmdMove    = "move"
	CmdPromote = "promote"
	CmdResign  = "resign"
)

// server → client, presence/notification endpoint
const (
	EventChallenge         = "challenge"
	EventChallengeAccepted = "challenge_accepted"
)

// ChallengeEvent tells the receiver someone challenged them.
type ChallengeEvent struct {
	Type      string `json:"type"`
	RequestID int64  `json:"request_id"`
	From      int64  `json:"from"`
}

// ChallengeAcceptedEvent tells the original sender the game is on.
type ChallengeAcceptedEvent struct {
	Type   string `json:"type"`
	GameID int64  `json:"game_id"`
	Room   string `json:"room"`
}

// Command is an inbound frame on the session relay endpoint.
type Command struct {
	Command string `json:"command"`
	Player  int64  `json:"player"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Square  string `json:"square,omitempty"`
	Piece   string `json:"piece,omitempty"`
}

// RoomEvent is what every room member receives back. Seq is stamped by the
// room at broadcast time and increases monotonically per room.
type RoomEvent struct {
	Type   string `json:"type"`
	Player int64  `json:"player"`
	Seq    uint64 `json:"seq"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Square string `json:"square,omitempty"`
	Piece  string `json:"piece,omitempty"`
}

// ErrorEvent reports a malformed frame back to its sender only.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
