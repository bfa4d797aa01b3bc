package runtime

import "testing"

type postRecorder struct {
	accept bool
	msgs   []Message
}

func (p *postRecorder) post(msg Message) bool {
	p.msgs = append(p.msgs, msg)
	return p.accept
}

func TestInvalidator_Coalesces(t *testing.T) {
	rec := &postRecorder{accept: true}
	inv := NewInvalidator(rec.post)

	for range 3 {
		inv.Invalidate()
	}
	if len(rec.msgs) != 1 || !inv.Pending() || inv.Coalesced() != 2 {
		t.Fatalf("got %d posts, pending %v, coalesced %d", len(rec.msgs), inv.Pending(), inv.Coalesced())
	}
	if _, ok := rec.msgs[0].(InvalidateMsg); !ok {
		t.Fatalf("expected InvalidateMsg, got %T", rec.msgs[0])
	}

	inv.frameStarted()
	inv.Invalidate()
	if len(rec.msgs) != 2 {
		t.Fatalf("expected a new request after the frame started, got %d posts", len(rec.msgs))
	}
}

func TestInvalidator_RetriesAfterDrop(t *testing.T) {
	rec := &postRecorder{}
	inv := NewInvalidator(rec.post)
	drops := 0
	inv.onDrop = func() { drops++ }

	inv.Invalidate()
	inv.Invalidate()
	if len(rec.msgs) != 2 || drops != 2 || inv.Pending() {
		t.Fatalf("got %d posts, %d drops, pending %v", len(rec.msgs), drops, inv.Pending())
	}
}

func TestInvalidator_ScheduleRunsInline(t *testing.T) {
	rec := &postRecorder{accept: true}
	inv := NewInvalidator(rec.post)
	ran := false

	inv.Schedule(func() { ran = true })
	inv.Schedule(nil)
	if !ran || len(rec.msgs) != 1 {
		t.Fatalf("ran %v, %d posts", ran, len(rec.msgs))
	}
}

func TestInvalidator_Nil(t *testing.T) {
	var inv *Invalidator
	inv.Invalidate()
	inv.frameStarted()
	if inv.Pending() || inv.Coalesced() != 0 {
		t.Fatal("nil invalidator should be inert")
	}
}
