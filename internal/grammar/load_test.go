package grammar_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"racc/internal/grammar"
	"racc/internal/testkit"
)

func TestLoadFile(t *testing.T) {
	g, err := grammar.LoadFile("testdata/expr.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := testkit.ExprGrammar()
	if !reflect.DeepEqual(g, want) {
		t.Fatalf("loaded model differs from fixture")
	}
	if g.NtBase != testkit.TokStart {
		t.Errorf("NtBase = %d, want %d", g.NtBase, testkit.TokStart)
	}
	exp := g.Token(testkit.TokExp)
	if !reflect.DeepEqual(exp.Rules, []grammar.RuleID{1, 2}) {
		t.Errorf("exp.Rules = %v", exp.Rules)
	}
	if !reflect.DeepEqual(exp.Locate, []grammar.RuleID{0, 1}) {
		t.Errorf("exp.Locate = %v", exp.Locate)
	}
	if g.ShiftN() != 6 || g.ReduceN() != 3 {
		t.Errorf("ShiftN/ReduceN = %d/%d, want 6/3", g.ShiftN(), g.ReduceN())
	}
	if sr, rr := g.ConflictCounts(); sr != 1 || rr != 0 {
		t.Errorf("conflicts = %d/%d, want 1/0", sr, rr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "syntax",
			src:  "[[token]\n",
			want: "failed to parse model",
		},
		{
			name: "unknown key",
			src:  "colour = 1\n[[token]]\nid = 0\nname = \"a\"\nterminal = true\n[[rule]]\nid = 0\nlhs = 0\n",
			want: `unknown model key "colour"`,
		},
		{
			name: "no tokens",
			src:  "[[rule]]\nid = 0\nlhs = 0\n",
			want: "missing [[token]]",
		},
		{
			name: "no rules",
			src:  "[[token]]\nid = 0\nname = \"a\"\nterminal = true\n",
			want: "missing [[rule]]",
		},
		{
			name: "bad action",
			src: `[[token]]
id = 0
name = "a"
terminal = true
[[rule]]
id = 0
lhs = 0
[[state]]
id = 0
default = "jump 3"
`,
			want: "unknown action",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grammar.Load(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadValidates(t *testing.T) {
	src := `
[[token]]
id = 0
name = "$end"
terminal = true

[[token]]
id = 1
name = "S"

[[rule]]
id = 0
lhs = 1
rhs = [0]

[[state]]
id = 0
default = "reduce 7"
actions = [{ token = 1, action = "shift 9" }]
`
	_, err := grammar.Load(strings.NewReader(src))
	var verr *grammar.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := []string{
		"state 0: action on nonterminal \"S\"",
		"state 0: shift to unknown state 9",
		"state 0: shift target 9 collides with shift_n 1",
		"state 0: reduce by unknown rule 7",
		"state 0: rule 7 collides with reduce_n 1",
	}
	if !reflect.DeepEqual(verr.Problems, want) {
		t.Fatalf("problems:\n%s\nwant:\n%s", strings.Join(verr.Problems, "\n"), strings.Join(want, "\n"))
	}
}
