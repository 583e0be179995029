package domain

import "testing"

func TestGameResult(t *testing.T) {
	winner := int64(1)
	g := &Game{WhiteID: 1, BlackID: 2, Status: GameFinished, WinnerID: &winner}

	if got := g.Result(1); got != "win" {
		t.Fatalf("expected win, got %s", got)
	}
	if got := g.Result(2); got != "lose" {
		t.Fatalf("expected lose, got %s", got)
	}

	g.WinnerID = nil
	for _, id := range []int64{1, 2} {
		if got := g.Result(id); got != "draw" {
			t.Fatalf("expected draw for user %d, got %s", id, got)
		}
	}
}
