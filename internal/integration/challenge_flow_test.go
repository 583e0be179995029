package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YeldosQoja/Chess-backend/internal/config"
	httpserver "github.com/YeldosQoja/Chess-backend/internal/http"
	"github.com/YeldosQoja/Chess-backend/internal/service"
)

func applyMigrations(t *testing.T, dbp *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := dbp.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

type signupResponse struct {
	Token string `json:"token"`
	User  struct {
		ID int64 `json:"id"`
	} `json:"user"`
}

func signup(t *testing.T, baseURL, name string) signupResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":      fmt.Sprintf("%s-%d@test.local", name, time.Now().UnixNano()),
		"username":   fmt.Sprintf("%s-%d", name, time.Now().UnixNano()),
		"first_name": name,
		"password":   "integration-pass",
	})
	res, err := http.Post(baseURL+"/api/v1/auth/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("signup status %d", res.StatusCode)
	}
	var out signupResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode signup: %v", err)
	}
	return out
}

func postJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return res
}

// readEvent reads frames until one with the wanted type arrives.
func readEvent(t *testing.T, conn *websocket.Conn, wantType string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	_ = conn.SetReadDeadline(deadline)
	for time.Now().Before(deadline) {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read waiting for %q: %v", wantType, err)
		}
		var ev map[string]any
		if err := json.Unmarshal(msg, &ev); err != nil {
			continue
		}
		if ev["type"] == wantType {
			return ev
		}
	}
	t.Fatalf("never received event %q", wantType)
	return nil
}

// newTestServer boots the whole API against the database named by
// DATABASE_URL, skipping the test when it is not set.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	t.Setenv("JWT_SECRET", "integration-secret")
	service.InitJWT()

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(dbp.Close)

	applyMigrations(t, dbp)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{
		APIRateLimit:   1000,
		APIRateWindow:  60,
		AuthRateLimit:  1000,
		AuthRateWindow: 60,
	}
	httpserver.RegisterRoutes(r, dbp, cfg, "test")
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestChallengeToRelayFlow(t *testing.T) {
	ts := newTestServer(t)

	alice := signup(t, ts.URL, "alice")
	bob := signup(t, ts.URL, "bob")

	wsBase := strings.Replace(ts.URL, "http", "ws", 1)

	connA, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+alice.Token, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+bob.Token, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	// give the server a beat to register both presences
	time.Sleep(100 * time.Millisecond)

	// A challenges B
	res := postJSON(t, ts.URL+"/api/v1/game/challenge/send", alice.Token, map[string]any{"opponent": bob.User.ID})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("send challenge status %d", res.StatusCode)
	}
	res.Body.Close()

	challengeEv := readEvent(t, connB, "challenge")
	requestID := int64(challengeEv["request_id"].(float64))
	if int64(challengeEv["from"].(float64)) != alice.User.ID {
		t.Fatalf("challenge from wrong user: %v", challengeEv)
	}

	// B accepts
	res = postJSON(t, ts.URL+"/api/v1/game/challenge/accept", bob.Token, map[string]any{"request_id": requestID})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("accept challenge status %d", res.StatusCode)
	}
	res.Body.Close()

	acceptedEv := readEvent(t, connA, "challenge_accepted")
	room, _ := acceptedEv["room"].(string)
	if room == "" {
		t.Fatalf("accepted event missing room: %v", acceptedEv)
	}

	// both players join the relay room
	gameA, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws/game/"+room+"?token="+alice.Token, nil)
	if err != nil {
		t.Fatalf("dial game A: %v", err)
	}
	defer gameA.Close()

	gameB, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws/game/"+room+"?token="+bob.Token, nil)
	if err != nil {
		t.Fatalf("dial game B: %v", err)
	}
	defer gameB.Close()

	time.Sleep(100 * time.Millisecond)

	move := map[string]any{"command": "move", "from": "e2", "to": "e4", "player": alice.User.ID}
	if err := gameA.WriteJSON(move); err != nil {
		t.Fatalf("write move: %v", err)
	}

	// both members receive the move, including the sender
	for name, conn := range map[string]*websocket.Conn{"A": gameA, "B": gameB} {
		ev := readEvent(t, conn, "move")
		if ev["from"] != "e2" || ev["to"] != "e4" {
			t.Fatalf("player %s got unexpected move: %v", name, ev)
		}
	}
}

func getJSON(t *testing.T, url, token string) map[string]any {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get %s status %d", url, res.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return out
}

func TestFriendRequestFlow(t *testing.T) {
	ts := newTestServer(t)

	carol := signup(t, ts.URL, "carol")
	dave := signup(t, ts.URL, "dave")

	res := postJSON(t, ts.URL+"/api/v1/friends/add", carol.Token, map[string]any{"friend": dave.User.ID})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("add friend status %d", res.StatusCode)
	}
	res.Body.Close()

	requests := getJSON(t, ts.URL+"/api/v1/friends/requests", dave.Token)
	list, _ := requests["requests"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected one pending request, got %v", requests)
	}

	res = postJSON(t, ts.URL+"/api/v1/friends/accept", dave.Token, map[string]any{"friend": carol.User.ID})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("accept friend status %d", res.StatusCode)
	}
	var accepted struct {
		Friendship struct {
			ID      int64 `json:"id"`
			UserAID int64 `json:"user_a_id"`
			UserBID int64 `json:"user_b_id"`
		} `json:"friendship"`
	}
	if err := json.NewDecoder(res.Body).Decode(&accepted); err != nil {
		t.Fatalf("decode accept: %v", err)
	}
	res.Body.Close()
	if accepted.Friendship.ID == 0 || accepted.Friendship.UserAID >= accepted.Friendship.UserBID {
		t.Fatalf("friendship row not ordered: %+v", accepted.Friendship)
	}

	// both sides now see each other in their friend lists
	for name, tok := range map[string]string{"carol": carol.Token, "dave": dave.Token} {
		friends := getJSON(t, ts.URL+"/api/v1/friends", tok)
		fl, _ := friends["friends"].([]any)
		if len(fl) != 1 {
			t.Fatalf("%s expected one friend, got %v", name, friends)
		}
	}
}
