package grammar_test

import (
	"strings"
	"testing"

	"racc/internal/grammar"
	"racc/internal/testkit"
)

func TestValidateFixtures(t *testing.T) {
	for name, g := range map[string]*grammar.Grammar{
		"expr": testkit.ExprGrammar(),
		"goto": testkit.GotoGrammar([]int{1, 1, 0}),
	} {
		if err := g.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *grammar.Grammar)
		want   string
	}{
		{
			name:   "terminal after nonterminal",
			mutate: func(g *grammar.Grammar) { g.Tokens[5].Terminal = true },
			want:   `terminal "exp" (id 5) follows a nonterminal`,
		},
		{
			name:   "token id mismatch",
			mutate: func(g *grammar.Grammar) { g.Tokens[2].ID = 7 },
			want:   `token "'+'" has id 7 at position 2`,
		},
		{
			name:   "terminal lhs",
			mutate: func(g *grammar.Grammar) { g.Rules[2].LHS = testkit.TokNum },
			want:   `rule 2: lhs "NUM" is a terminal`,
		},
		{
			name:   "goto on terminal",
			mutate: func(g *grammar.Grammar) { g.States[0].Gotos[0].Token = testkit.TokPlus },
			want:   `state 0: goto on terminal "'+'"`,
		},
		{
			name: "duplicate action",
			mutate: func(g *grammar.Grammar) {
				s := g.States[1]
				s.Actions = append(s.Actions, s.Actions[0])
			},
			want: "state 1: duplicate action on token 0",
		},
		{
			name:   "missing default",
			mutate: func(g *grammar.Grammar) { g.States[3].Default = nil },
			want:   "state 3: missing action",
		},
		{
			name:   "dot out of range",
			mutate: func(g *grammar.Grammar) { g.States[2].Seed[0].Dot = 4 },
			want:   "state 2: item dot 4 outside rule 2",
		},
		{
			name:   "unknown conflict rule",
			mutate: func(g *grammar.Grammar) { g.States[5].SRConflicts[0].Reduce = 42 },
			want:   "shift/reduce conflict refers to unknown token 2 or rule 42",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testkit.ExprGrammar()
			tt.mutate(g)
			err := g.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want containing %q", err, tt.want)
			}
		})
	}
}
