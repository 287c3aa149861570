// Package testkit holds fixture grammars and table invariant checks shared
// by tests.
package testkit

import "racc/internal/grammar"

// Token ids of ExprGrammar.
const (
	TokEnd   grammar.TokenID = 0 // $end
	TokError grammar.TokenID = 1 // error
	TokPlus  grammar.TokenID = 2 // '+'
	TokNum   grammar.TokenID = 3 // NUM
	TokStart grammar.TokenID = 4 // $start
	TokExp   grammar.TokenID = 5 // exp
)

func shift(n int) grammar.Action  { return grammar.ShiftAction{Target: grammar.StateID(n)} }
func reduce(n int) grammar.Action { return grammar.ReduceAction{Rule: grammar.RuleID(n)} }

// ExprGrammar returns the automaton of
//
//	$start : exp $end
//	exp    : exp '+' exp | NUM
//
// with the shift/reduce conflict of state 5 resolved as shift.
func ExprGrammar() *grammar.Grammar {
	tokens := []*grammar.Token{
		{ID: TokEnd, Name: "$end", Terminal: true},
		{ID: TokError, Name: "error", Terminal: true},
		{ID: TokPlus, Name: "'+'", Terminal: true},
		{ID: TokNum, Name: "NUM", Terminal: true},
		{ID: TokStart, Name: "$start"},
		{ID: TokExp, Name: "exp"},
	}
	rules := []*grammar.Rule{
		{ID: 0, LHS: TokStart, RHS: []grammar.TokenID{TokExp, TokEnd}},
		{ID: 1, LHS: TokExp, RHS: []grammar.TokenID{TokExp, TokPlus, TokExp}, Action: "result = val[0] + val[2]", Line: 3},
		{ID: 2, LHS: TokExp, RHS: []grammar.TokenID{TokNum}},
	}
	states := []*grammar.State{
		{
			ID:      0,
			Actions: []grammar.TokenAction{{Token: TokNum, Action: shift(2)}},
			Default: grammar.ErrorAction{},
			Gotos:   []grammar.Goto{{Token: TokExp, Target: 1}},
			Seed:    []grammar.Item{{Rule: 0, Dot: 0}},
			Closure: []grammar.Item{{Rule: 0, Dot: 0}, {Rule: 1, Dot: 0}, {Rule: 2, Dot: 0}},
		},
		{
			ID: 1,
			Actions: []grammar.TokenAction{
				{Token: TokEnd, Action: shift(3)},
				{Token: TokPlus, Action: shift(4)},
			},
			Default: grammar.ErrorAction{},
			Seed:    []grammar.Item{{Rule: 0, Dot: 1}, {Rule: 1, Dot: 1}},
			Closure: []grammar.Item{{Rule: 0, Dot: 1}, {Rule: 1, Dot: 1}},
		},
		{
			ID:      2,
			Default: reduce(2),
			Seed:    []grammar.Item{{Rule: 2, Dot: 1}},
			Closure: []grammar.Item{{Rule: 2, Dot: 1}},
		},
		{
			ID:      3,
			Default: grammar.AcceptAction{},
			Seed:    []grammar.Item{{Rule: 0, Dot: 2}},
			Closure: []grammar.Item{{Rule: 0, Dot: 2}},
		},
		{
			ID:      4,
			Actions: []grammar.TokenAction{{Token: TokNum, Action: shift(2)}},
			Default: grammar.ErrorAction{},
			Gotos:   []grammar.Goto{{Token: TokExp, Target: 5}},
			Seed:    []grammar.Item{{Rule: 1, Dot: 2}},
			Closure: []grammar.Item{{Rule: 1, Dot: 2}, {Rule: 1, Dot: 0}, {Rule: 2, Dot: 0}},
		},
		{
			ID:          5,
			Actions:     []grammar.TokenAction{{Token: TokPlus, Action: shift(4)}},
			Default:     reduce(1),
			SRConflicts: []grammar.SRConflict{{Shift: TokPlus, Reduce: 1}},
			Seed:        []grammar.Item{{Rule: 1, Dot: 3}, {Rule: 1, Dot: 1}},
			Closure:     []grammar.Item{{Rule: 1, Dot: 3}, {Rule: 1, Dot: 1}},
		},
	}
	return grammar.New(tokens, rules, states, 0, 0)
}

// GotoGrammar builds a grammar with terminals $end and x, nonterminals
// $start and nt, and one state per entry of gotos. gotos[i] is the goto on
// nt from state i, or -1 for none. Every state shifts x to itself so action
// rows are never empty.
func GotoGrammar(gotos []int) *grammar.Grammar {
	tokens := []*grammar.Token{
		{ID: 0, Name: "$end", Terminal: true},
		{ID: 1, Name: "x", Terminal: true},
		{ID: 2, Name: "$start"},
		{ID: 3, Name: "nt"},
	}
	rules := []*grammar.Rule{
		{ID: 0, LHS: 2, RHS: []grammar.TokenID{3, 0}},
		{ID: 1, LHS: 3, RHS: []grammar.TokenID{1}},
	}
	states := make([]*grammar.State, len(gotos))
	for i, dest := range gotos {
		st := &grammar.State{
			ID:      grammar.StateID(i),
			Actions: []grammar.TokenAction{{Token: 1, Action: shift(i)}},
			Default: reduce(1),
		}
		if dest >= 0 {
			st.Gotos = []grammar.Goto{{Token: 3, Target: grammar.StateID(dest)}}
		}
		states[i] = st
	}
	return grammar.New(tokens, rules, states, 0, 0)
}
