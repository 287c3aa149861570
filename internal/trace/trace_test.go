package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopePass, true},
		{LevelPhase, ScopeRow, false},
		{LevelDetail, ScopeRow, true},
		{LevelDebug, ScopeRow, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := 1; i <= 5; i++ {
		ring.Emit(&Event{Seq: uint64(i), Kind: KindPoint, Scope: ScopePass})
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, want := range []uint64{3, 4, 5} {
		if snap[i].Seq != want {
			t.Errorf("snap[%d].Seq = %d, want %d", i, snap[i].Seq, want)
		}
	}
}

func TestRingFiltersRows(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	ring.Emit(&Event{Seq: 1, Scope: ScopeDriver})
	ring.Emit(&Event{Seq: 2, Scope: ScopeRow})
	if snap := ring.Snapshot(); len(snap) != 1 || snap[0].Seq != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestFormatText(t *testing.T) {
	ev := &Event{
		Seq:    42,
		Kind:   KindSpanEnd,
		Scope:  ScopePass,
		Name:   "packed-goto",
		Detail: "ok",
		Extra:  map[string]string{"z": "1", "a": "2"},
	}
	want := "[    42]   ← packed-goto (ok) {a=2, z=1}\n"
	if got := string(FormatEvent(ev, FormatText)); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatNDJSON(t *testing.T) {
	ev := &Event{Seq: 7, Kind: KindSpanBegin, Scope: ScopeDriver, SpanID: 3, Name: "tables"}
	line := FormatEvent(ev, FormatNDJSON)
	if !bytes.HasSuffix(line, []byte("\n")) {
		t.Fatalf("missing newline: %q", line)
	}
	var got jsonEvent
	if err := json.Unmarshal(line, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Kind != "begin" || got.Scope != "driver" || got.SpanID != 3 || got.Name != "tables" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestSpansThroughStream(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tracer)

	root := Begin(FromContext(ctx), ScopeDriver, "tables", CurrentSpan(ctx).SpanID)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: root.ID()})
	pass := Begin(FromContext(ctx), ScopePass, "load", CurrentSpan(ctx).SpanID)
	pass.WithExtra("bytes", "10").End("")
	row := Begin(FromContext(ctx), ScopeRow, "action-row", pass.ID())
	row.End("")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (rows filtered):\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "← load {bytes=10}") {
		t.Errorf("pass end line = %q", lines[2])
	}
	if row.ID() != 0 {
		t.Errorf("filtered span has id %d", row.ID())
	}
}

func TestRingLookup(t *testing.T) {
	ring := NewRingTracer(4, LevelError)
	multi := NewMultiTracer(LevelError, NewStreamTracer(&bytes.Buffer{}, LevelError, FormatText), ring)
	if got, ok := Ring(multi); !ok || got != ring {
		t.Errorf("Ring(multi) = %v, %v", got, ok)
	}
	if _, ok := Ring(Nop); ok {
		t.Error("Nop has no ring")
	}
}
