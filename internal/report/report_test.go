package report_test

import (
	"strings"
	"testing"

	"racc/internal/diag"
	"racc/internal/grammar"
	"racc/internal/report"
	"racc/internal/testkit"
)

const exprReport = `state 5 contains 1 shift/reduce conflicts

-------- Grammar --------

rule 1 exp: exp '+' exp

rule 2 exp: NUM


------- Token data -------

**Nonterminals, with rules where they appear

  $start (4)
    on right: 
    on left : 
  exp (5)
    on right: 1
    on left : 1 2

**Terminals, with rules where they appear

  $end (0) 

  error (1) 

  '+' (2) 1

  NUM (3) 2


--------- State ---------

state 0


  NUM           shift, and go to state 2

  exp           go to state 1

state 1

   1) exp : exp _ '+' exp

  $end          shift, and go to state 3
  '+'           shift, and go to state 4


state 2

   2) exp : NUM _

  $default      reduce using rule 2 (exp)


state 3


  $default      accept


state 4

   1) exp : exp '+' _ exp

  NUM           shift, and go to state 2

  exp           go to state 5

state 5

   1) exp : exp '+' exp _
   1) exp : exp _ '+' exp

  '+'           shift, and go to state 4
  '+'           [reduce using rule 1 (exp)]
  $default      reduce using rule 1 (exp)

`

func TestWrite(t *testing.T) {
	var sb strings.Builder
	if err := report.Write(&sb, testkit.ExprGrammar(), report.Options{}); err != nil {
		t.Fatal(err)
	}
	if got := sb.String(); got != exprReport {
		t.Errorf("report mismatch\ngot:\n%s\nwant:\n%s", got, exprReport)
	}
}

func TestWriteDebug(t *testing.T) {
	var sb strings.Builder
	if err := report.Write(&sb, testkit.ExprGrammar(), report.Options{Debug: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"rule 0 $start: exp $end\n\n",
		"state 0\n\n   0) $start : _ exp $end\n   1) exp : _ exp '+' exp\n   2) exp : _ NUM\n\n",
		"  $default      error\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug report lacks %q", want)
		}
	}
}

func TestWideTokenNames(t *testing.T) {
	tokens := []*grammar.Token{
		{ID: 0, Name: "$end", Terminal: true},
		{ID: 1, Name: "数字", Terminal: true},
		{ID: 2, Name: "$start"},
	}
	rules := []*grammar.Rule{{ID: 0, LHS: 2, RHS: []grammar.TokenID{1, 0}}}
	states := []*grammar.State{
		{ID: 0, Actions: []grammar.TokenAction{{Token: 1, Action: grammar.ShiftAction{Target: 1}}}, Default: grammar.ErrorAction{}},
		{ID: 1, Default: grammar.AcceptAction{}},
	}
	var sb strings.Builder
	if err := report.Write(&sb, grammar.New(tokens, rules, states, 0, 0), report.Options{}); err != nil {
		t.Fatal(err)
	}
	// 数字 занимает 4 колонки, дополняется до 12
	if want := "  数字          shift, and go to state 1\n"; !strings.Contains(sb.String(), want) {
		t.Errorf("expected %q in:\n%s", want, sb.String())
	}
}

func uselessGrammar() *grammar.Grammar {
	g := testkit.ExprGrammar()
	tokens := append(g.Tokens, &grammar.Token{ID: 6, Name: "junk", Useless: true})
	rules := append(g.Rules, &grammar.Rule{ID: 3, LHS: 6, RHS: []grammar.TokenID{testkit.TokPlus}})
	g.States[1].RRConflicts = []grammar.RRConflict{{Token: testkit.TokEnd, LowPrec: 2}}
	return grammar.New(tokens, rules, g.States, 0, 0)
}

func TestWriteUseless(t *testing.T) {
	var sb strings.Builder
	if err := report.WriteUseless(&sb, uselessGrammar()); err != nil {
		t.Fatal(err)
	}
	if got, want := sb.String(), "rule 3 (junk) never reduced\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiagnose(t *testing.T) {
	bag := diag.NewBag(100)
	report.Diagnose(uselessGrammar(), "expr.toml", diag.BagReporter{Bag: bag})
	bag.Sort()

	tests := []struct {
		code diag.Code
		want int
	}{
		{diag.TblShiftReduce, 1},
		{diag.TblReduceReduce, 1},
		{diag.TblNeverReduced, 1},
	}
	for _, tt := range tests {
		if got := bag.Count(tt.code); got != tt.want {
			t.Errorf("%s: %d diagnostics, want %d", tt.code.ID(), got, tt.want)
		}
	}
	if bag.HasErrors() {
		t.Error("conflicts must be warnings")
	}
	first := bag.Items()[0]
	if first.Code != diag.TblNeverReduced || first.Message != "rule 3 (junk) never reduced" {
		t.Errorf("first = %+v", first)
	}
}

func TestWriteReduceReduce(t *testing.T) {
	var sb strings.Builder
	if err := report.Write(&sb, uselessGrammar(), report.Options{}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	tests := []struct {
		name string
		want string
	}{
		{"summary", "state 1 contains 1 reduce/reduce conflicts\nstate 5 contains 1 shift/reduce conflicts\n"},
		{"loser", "  $end          shift, and go to state 3\n" +
			"  '+'           shift, and go to state 4\n" +
			"  $end          [reduce using rule 2 (exp)]\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.want) {
				t.Errorf("report lacks %q in:\n%s", tt.want, out)
			}
		})
	}
}
