package tables_test

import (
	"errors"
	"testing"

	"racc/internal/grammar"
	"racc/internal/tables"
	"racc/internal/testkit"
)

func TestEncode(t *testing.T) {
	enc := tables.Encoder{Sentinels: tables.Sentinels{Shift: 6, Reduce: 3}}
	tests := []struct {
		name string
		act  grammar.Action
		want int
	}{
		{"shift", grammar.ShiftAction{Target: 4}, 4},
		{"reduce", grammar.ReduceAction{Rule: 2}, -2},
		{"reduce rule 0", grammar.ReduceAction{Rule: 0}, 0},
		{"accept", grammar.AcceptAction{}, 6},
		{"error", grammar.ErrorAction{}, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(tt.act)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Encode(%v) = %d, want %d", tt.act, got, tt.want)
			}
		})
	}
}

func TestEncodeNilIsInternalError(t *testing.T) {
	enc := tables.Encoder{Sentinels: tables.Sentinels{Shift: 1, Reduce: 1}}
	_, err := enc.Encode(nil)
	if !errors.Is(err, tables.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestDecodeInvertsEncode(t *testing.T) {
	g := testkit.ExprGrammar()
	enc := tables.NewEncoder(g)
	acts := []grammar.Action{
		grammar.ShiftAction{Target: 5},
		grammar.ReduceAction{Rule: 1},
		grammar.AcceptAction{},
		grammar.ErrorAction{},
	}
	for _, act := range acts {
		code, err := enc.Encode(act)
		if err != nil {
			t.Fatal(err)
		}
		if got := enc.Decode(code); got != act {
			t.Errorf("Decode(%d) = %v, want %v", code, got, act)
		}
	}
}

// Accept and error codes stay outside the shift and reduce code ranges.
func TestSentinelsDoNotCollide(t *testing.T) {
	grammars := map[string]*grammar.Grammar{
		"expr":   testkit.ExprGrammar(),
		"single": testkit.GotoGrammar([]int{-1}),
		"wide":   testkit.GotoGrammar([]int{1, 2, 3, 4, 5, 6, 7, 7, -1}),
	}
	for name, g := range grammars {
		t.Run(name, func(t *testing.T) {
			enc := tables.NewEncoder(g)
			accept, _ := enc.Encode(grammar.AcceptAction{})
			errCode, _ := enc.Encode(grammar.ErrorAction{})
			for s := range g.States {
				code, _ := enc.Encode(grammar.ShiftAction{Target: grammar.StateID(s)})
				if code == accept {
					t.Fatalf("shift %d collides with accept %d", s, accept)
				}
			}
			for r := range g.Rules {
				code, _ := enc.Encode(grammar.ReduceAction{Rule: grammar.RuleID(r)})
				if code == errCode {
					t.Fatalf("reduce %d collides with error %d", r, errCode)
				}
			}
		})
	}
}
