package ws

import (
	"encoding/json"
	"sync"
	"testing"
)

func recvEvent(t *testing.T, c *Client) *RoomEvent {
	t.Helper()
	select {
	case data := <-c.Send:
		var ev RoomEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return &ev
	default:
		t.Fatalf("user %d received nothing", c.UserID)
		return nil
	}
}

func TestRoomNameDeterministic(t *testing.T) {
	if RoomName(1, 2, 10) != RoomName(2, 1, 10) {
		t.Fatalf("room name should not depend on participant order")
	}
	if RoomName(1, 2, 10) == RoomName(1, 2, 11) {
		t.Fatalf("different games must map to different rooms")
	}
}

func TestBroadcastIncludesSender(t *testing.T) {
	hub := NewHub()

	c1 := NewClient(1, nil)
	c2 := NewClient(2, nil)
	c3 := NewClient(3, nil)

	room := hub.Join("r", c1)
	hub.Join("r", c2)
	hub.Join("r", c3)

	room.HandleCommand(c1, []byte(`{"command":"move","from":"e2","to":"e4","player":1}`))

	for _, c := range []*Client{c1, c2, c3} {
		ev := recvEvent(t, c)
		if ev.Type != "move" || ev.From != "e2" || ev.To != "e4" || ev.Player != 1 {
			t.Fatalf("user %d got unexpected event: %+v", c.UserID, ev)
		}
		if ev.Seq != 1 {
			t.Fatalf("expected seq 1, got %d", ev.Seq)
		}
	}
}

func TestBroadcastAfterLeave(t *testing.T) {
	hub := NewHub()

	c1 := NewClient(1, nil)
	c2 := NewClient(2, nil)
	c3 := NewClient(3, nil)

	room := hub.Join("r", c1)
	hub.Join("r", c2)
	hub.Join("r", c3)

	hub.Leave(room, c3)

	room.HandleCommand(c2, []byte(`{"command":"promote","square":"e8","piece":"queen","player":2}`))

	for _, c := range []*Client{c1, c2} {
		ev := recvEvent(t, c)
		if ev.Type != "promote" || ev.Square != "e8" || ev.Piece != "queen" {
			t.Fatalf("user %d got unexpected event: %+v", c.UserID, ev)
		}
	}

	select {
	case <-c3.Send:
		t.Fatalf("departed member still received the event")
	default:
	}
}

func TestRoomSequenceMonotonic(t *testing.T) {
	hub := NewHub()
	c := NewClient(1, nil)
	room := hub.Join("r", c)

	for i := 1; i <= 3; i++ {
		room.HandleCommand(c, []byte(`{"command":"move","from":"a2","to":"a3","player":1}`))
		ev := recvEvent(t, c)
		if ev.Seq != uint64(i) {
			t.Fatalf("expected seq %d, got %d", i, ev.Seq)
		}
	}
}

func TestResignIsRelayedWithoutEffect(t *testing.T) {
	hub := NewHub()
	c1 := NewClient(1, nil)
	c2 := NewClient(2, nil)
	room := hub.Join("r", c1)
	hub.Join("r", c2)

	room.HandleCommand(c1, []byte(`{"command":"resign","player":1}`))

	for _, c := range []*Client{c1, c2} {
		ev := recvEvent(t, c)
		if ev.Type != "resign" || ev.Player != 1 {
			t.Fatalf("unexpected resign event: %+v", ev)
		}
	}
}

func TestUnknownCommandGoesBackToSenderOnly(t *testing.T) {
	hub := NewHub()
	c1 := NewClient(1, nil)
	c2 := NewClient(2, nil)
	room := hub.Join("r", c1)
	hub.Join("r", c2)

	room.HandleCommand(c1, []byte(`{"command":"castle"}`))

	select {
	case data := <-c1.Send:
		var ev ErrorEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != "error" {
			t.Fatalf("expected error event, got %+v", ev)
		}
	default:
		t.Fatalf("sender did not get an error back")
	}

	select {
	case <-c2.Send:
		t.Fatalf("error leaked to another member")
	default:
	}
}

func TestConcurrentJoinLeaveNeverStrandsAMember(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		c := NewClient(int64(g), nil)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				room := hub.Join("r", c)
				// while we are a member the hub must keep mapping the id to
				// our room; a concurrent leave dropping it would strand us in
				// a room no broadcast can reach
				if cur := hub.Lookup("r"); cur != room {
					t.Errorf("joined room was dropped while occupied")
					hub.Leave(room, c)
					return
				}
				hub.Leave(room, c)
			}
		}()
	}
	wg.Wait()

	if hub.RoomCount() != 0 {
		t.Fatalf("expected no rooms after churn, got %d", hub.RoomCount())
	}
}

func TestHubDropsEmptyRooms(t *testing.T) {
	hub := NewHub()

	c1 := NewClient(1, nil)
	c2 := NewClient(2, nil)
	room := hub.Join("r", c1)
	hub.Join("r", c2)

	hub.Leave(room, c1)
	if hub.Lookup("r") == nil {
		t.Fatalf("room dropped while it still had a member")
	}

	hub.Leave(room, c2)
	if hub.Lookup("r") != nil {
		t.Fatalf("empty room was not dropped")
	}
	if hub.RoomCount() != 0 {
		t.Fatalf("room count should be zero")
	}
}
