package conversation

import "testing"

func TestNewContextSeedsFramingAndAcknowledgement(t *testing.T) {
	ctx := NewContext("framing prompt", "ack reply")

	turns := ctx.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 seed turns, got %d", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Text != "framing prompt" {
		t.Errorf("unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != RoleModel || turns[1].Text != "ack reply" {
		t.Errorf("unexpected second turn: %+v", turns[1])
	}
}

func TestAppendPreservesArrivalOrder(t *testing.T) {
	ctx := NewContext("framing", "ack")
	ctx.AppendUser("update 1")
	ctx.AppendModel("reply 1")
	ctx.AppendUser("update 2")
	ctx.AppendModel("reply 2")

	turns := ctx.Turns()
	want := []Turn{
		{RoleUser, "framing"},
		{RoleModel, "ack"},
		{RoleUser, "update 1"},
		{RoleModel, "reply 1"},
		{RoleUser, "update 2"},
		{RoleModel, "reply 2"},
	}
	if len(turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(turns))
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d: got %+v, want %+v", i, turns[i], want[i])
		}
	}
}

func TestTurnsReturnsACopy(t *testing.T) {
	ctx := NewContext("framing", "ack")

	snapshot := ctx.Turns()
	snapshot[0].Text = "mutated"

	if ctx.Turns()[0].Text != "framing" {
		t.Errorf("mutating the snapshot changed the transcript")
	}
}

func TestLenTracksGrowth(t *testing.T) {
	ctx := NewContext("framing", "ack")
	if ctx.Len() != 2 {
		t.Fatalf("expected Len 2, got %d", ctx.Len())
	}

	for i := 0; i < 3; i++ {
		ctx.AppendUser("u")
		ctx.AppendModel("m")
	}
	if ctx.Len() != 8 {
		t.Errorf("expected Len 8 after three exchanges, got %d", ctx.Len())
	}
}
