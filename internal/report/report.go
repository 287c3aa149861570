// Package report writes the human-readable description of a grammar model:
// conflicts, rules, token cross references and every state with its items
// and actions.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"racc/internal/grammar"
)

// nameWidth is the display width token names are padded to in action lines.
const nameWidth = 12

// Options configures the report.
type Options struct {
	// Debug lists rule 0, full closures and error actions.
	Debug bool
}

// Write writes the full report: conflicts, rules, tokens and states.
func Write(w io.Writer, g *grammar.Grammar, opts Options) error {
	p := printer{g: g, debug: opts.Debug}
	p.conflicts()
	p.buf.WriteString("\n")
	p.rules()
	p.buf.WriteString("\n")
	p.tokens()
	p.buf.WriteString("\n")
	p.states()
	_, err := w.Write(p.buf.Bytes())
	return err
}

// WriteUseless lists the rules of useless nonterminals.
func WriteUseless(w io.Writer, g *grammar.Grammar) error {
	p := printer{g: g}
	p.useless()
	_, err := w.Write(p.buf.Bytes())
	return err
}

type printer struct {
	g     *grammar.Grammar
	debug bool
	buf   bytes.Buffer
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(&p.buf, format, args...)
}

// pad renders a token name in the fixed-width column.
func pad(name string) string {
	return runewidth.FillRight(norm.NFC.String(name), nameWidth)
}

func (p *printer) useless() {
	for _, tok := range p.g.Tokens {
		if !tok.Useless {
			continue
		}
		for _, id := range tok.Rules {
			p.printf("rule %d (%s) never reduced\n", id, p.g.LHSName(id))
		}
	}
}

func (p *printer) conflicts() {
	for _, s := range p.g.States {
		if n := len(s.SRConflicts); n > 0 {
			p.printf("state %d contains %d shift/reduce conflicts\n", s.ID, n)
		}
		if n := len(s.RRConflicts); n > 0 {
			p.printf("state %d contains %d reduce/reduce conflicts\n", s.ID, n)
		}
	}
}

func (p *printer) rules() {
	p.buf.WriteString("-------- Grammar --------\n\n")
	for _, r := range p.g.Rules {
		if r.ID == 0 && !p.debug {
			continue
		}
		p.printf("rule %d %s: %s\n\n", r.ID, p.g.SymbolName(r.LHS), p.symbols(r.RHS))
	}
}

func (p *printer) symbols(ids []grammar.TokenID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = p.g.SymbolName(id)
	}
	return strings.Join(names, " ")
}

func (p *printer) tokens() {
	p.buf.WriteString("------- Token data -------\n\n")
	p.buf.WriteString("**Nonterminals, with rules where they appear\n\n")
	for _, tok := range p.g.Nonterminals() {
		p.printf("  %s (%d)\n    on right: %s\n    on left : %s\n",
			tok.Name, tok.ID, ruleList(tok.Locate), ruleList(tok.Rules))
	}
	p.buf.WriteString("\n**Terminals, with rules where they appear\n\n")
	for _, tok := range p.g.Terminals() {
		p.printf("  %s (%d) %s\n\n", tok.Name, tok.ID, ruleList(tok.Locate))
	}
}

// ruleList joins distinct rule ids, rule 0 excluded.
func ruleList(ids []grammar.RuleID) string {
	seen := make(map[grammar.RuleID]bool, len(ids))
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		parts = append(parts, strconv.Itoa(int(id)))
	}
	return strings.Join(parts, " ")
}

func (p *printer) states() {
	p.buf.WriteString("--------- State ---------\n")
	for _, s := range p.g.States {
		p.printf("\nstate %d\n\n", s.ID)
		items := s.Seed
		if p.debug {
			items = s.Closure
		}
		for _, it := range items {
			if it.Rule != 0 || p.debug {
				p.item(it)
			}
		}
		p.buf.WriteString("\n")
		p.actions(s)
	}
}

// item renders "  N) lhs : a _ b", the underscore marking the dot.
func (p *printer) item(it grammar.Item) {
	r := p.g.Rule(it.Rule)
	if r == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%4d) %s :", r.ID, p.g.SymbolName(r.LHS))
	for i, id := range r.RHS {
		if i == it.Dot {
			sb.WriteString(" _")
		}
		sb.WriteString(" ")
		sb.WriteString(p.g.SymbolName(id))
	}
	if it.Dot >= r.Size() {
		sb.WriteString(" _")
	}
	sb.WriteString("\n")
	p.buf.WriteString(sb.String())
}

// actions prints shift/accept/error lines first, then the reduce lines
// with any conflicts, then the gotos.
func (p *printer) actions(s *grammar.State) {
	var reduces bytes.Buffer
	for _, ta := range s.Actions {
		name := p.g.SymbolName(ta.Token)
		p.action(&reduces, name, ta.Action)
		for _, c := range s.SRConflictsOn(ta.Token) {
			fmt.Fprintf(&reduces, "  %s  [reduce using rule %d (%s)]\n",
				pad(p.g.SymbolName(c.Shift)), c.Reduce, p.g.LHSName(c.Reduce))
		}
		for _, c := range s.RRConflictsOn(ta.Token) {
			fmt.Fprintf(&reduces, "  %s  [reduce using rule %d (%s)]\n",
				pad(p.g.SymbolName(c.Token)), c.LowPrec, p.g.LHSName(c.LowPrec))
		}
	}
	p.action(&reduces, "$default", s.Default)

	p.buf.Write(reduces.Bytes())
	p.buf.WriteString("\n")

	for _, gt := range s.Gotos {
		p.printf("  %s  go to state %d\n", pad(p.g.SymbolName(gt.Token)), gt.Target)
	}
}

func (p *printer) action(reduces *bytes.Buffer, tok string, act grammar.Action) {
	switch a := act.(type) {
	case grammar.ShiftAction:
		p.printf("  %s  shift, and go to state %d\n", pad(tok), a.Target)
	case grammar.ReduceAction:
		fmt.Fprintf(reduces, "  %s  reduce using rule %d (%s)\n", pad(tok), a.Rule, p.g.LHSName(a.Rule))
	case grammar.AcceptAction:
		p.printf("  %s  accept\n", pad(tok))
	case grammar.ErrorAction:
		if p.debug {
			p.printf("  %s  error\n", pad(tok))
		}
	}
}
