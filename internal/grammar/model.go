package grammar

import (
	"strconv"
	"strings"
)

type (
	TokenID int
	RuleID  int
	StateID int
)

// Token is a grammar symbol. Terminals occupy ids [0, NtBase), nonterminals
// occupy [NtBase, len(tokens)).
type Token struct {
	ID       TokenID
	Name     string
	Terminal bool
	Useless  bool

	// Rules lists the rules with this token on the left, Locate the rules
	// with it on the right. Both are filled by Grammar.index.
	Rules  []RuleID
	Locate []RuleID
}

func (t *Token) String() string { return t.Name }

// Rule is a production. Rule 0 is the synthetic start rule.
type Rule struct {
	ID     RuleID
	LHS    TokenID
	RHS    []TokenID
	Action string // user action source, empty when the rule has none
	Line   int    // line the action starts on
}

// Size is the number of right-hand symbols.
func (r *Rule) Size() int { return len(r.RHS) }

// HasAction reports whether the rule carries action source.
func (r *Rule) HasAction() bool { return strings.TrimSpace(r.Action) != "" }

// Item is an LR item: a rule with a dot before RHS[Dot].
type Item struct {
	Rule RuleID
	Dot  int
}

// TokenAction is one entry of a state's action row.
type TokenAction struct {
	Token  TokenID
	Action Action
}

// Goto is one entry of a state's goto row.
type Goto struct {
	Token  TokenID
	Target StateID
}

// SRConflict records a shift/reduce conflict: Shift is the shifted token,
// Reduce the rule that lost.
type SRConflict struct {
	Shift  TokenID
	Reduce RuleID
}

// RRConflict records a reduce/reduce conflict on Token; LowPrec lost.
type RRConflict struct {
	Token   TokenID
	LowPrec RuleID
}

// State is a finished LALR state.
type State struct {
	ID          StateID
	Actions     []TokenAction
	Default     Action
	Gotos       []Goto
	SRConflicts []SRConflict
	RRConflicts []RRConflict
	Closure     []Item
	Seed        []Item
}

// SRConflictsOn returns the shift/reduce conflicts recorded for tok.
func (s *State) SRConflictsOn(tok TokenID) []SRConflict {
	var out []SRConflict
	for _, c := range s.SRConflicts {
		if c.Shift == tok {
			out = append(out, c)
		}
	}
	return out
}

// RRConflictsOn returns the reduce/reduce conflicts recorded for tok.
func (s *State) RRConflictsOn(tok TokenID) []RRConflict {
	var out []RRConflict
	for _, c := range s.RRConflicts {
		if c.Token == tok {
			out = append(out, c)
		}
	}
	return out
}

// GotoOn returns the destination for nonterminal tok.
func (s *State) GotoOn(tok TokenID) (StateID, bool) {
	for _, g := range s.Gotos {
		if g.Token == tok {
			return g.Target, true
		}
	}
	return 0, false
}

// ActionOn returns the explicit action for terminal tok.
func (s *State) ActionOn(tok TokenID) (Action, bool) {
	for _, ta := range s.Actions {
		if ta.Token == tok {
			return ta.Action, true
		}
	}
	return nil, false
}

// Grammar is the read-only model handed over by the automaton builder.
type Grammar struct {
	Tokens []*Token
	Rules  []*Rule
	States []*State

	NtBase TokenID

	shiftN  int
	reduceN int
}

// New assembles a grammar from its tables. shiftN and reduceN may be zero,
// in which case the state and rule counts are used.
func New(tokens []*Token, rules []*Rule, states []*State, shiftN, reduceN int) *Grammar {
	g := &Grammar{
		Tokens:  tokens,
		Rules:   rules,
		States:  states,
		shiftN:  shiftN,
		reduceN: reduceN,
	}
	g.index()
	return g
}

// index derives NtBase and the Rules/Locate cross references.
func (g *Grammar) index() {
	g.NtBase = TokenID(len(g.Tokens))
	for _, t := range g.Tokens {
		if !t.Terminal && t.ID < g.NtBase {
			g.NtBase = t.ID
		}
		t.Rules = nil
		t.Locate = nil
	}
	for _, r := range g.Rules {
		if lhs := g.Token(r.LHS); lhs != nil {
			lhs.Rules = append(lhs.Rules, r.ID)
		}
		for _, id := range r.RHS {
			tok := g.Token(id)
			if tok == nil {
				continue
			}
			if n := len(tok.Locate); n > 0 && tok.Locate[n-1] == r.ID {
				continue
			}
			tok.Locate = append(tok.Locate, r.ID)
		}
	}
}

// Token returns the token with the given id, or nil.
func (g *Grammar) Token(id TokenID) *Token {
	if id < 0 || int(id) >= len(g.Tokens) {
		return nil
	}
	return g.Tokens[id]
}

// Rule returns the rule with the given id, or nil.
func (g *Grammar) Rule(id RuleID) *Rule {
	if id < 0 || int(id) >= len(g.Rules) {
		return nil
	}
	return g.Rules[id]
}

// State returns the state with the given id, or nil.
func (g *Grammar) State(id StateID) *State {
	if id < 0 || int(id) >= len(g.States) {
		return nil
	}
	return g.States[id]
}

// Terminals returns the terminal tokens in id order.
func (g *Grammar) Terminals() []*Token {
	return g.Tokens[:min(int(g.NtBase), len(g.Tokens))]
}

// Nonterminals returns the nonterminal tokens in id order.
func (g *Grammar) Nonterminals() []*Token {
	return g.Tokens[min(int(g.NtBase), len(g.Tokens)):]
}

// ShiftN is the number used to encode Accept. It exceeds every shift target.
func (g *Grammar) ShiftN() int {
	if g.shiftN > 0 {
		return g.shiftN
	}
	return len(g.States)
}

// ReduceN is the number used to encode Error. It exceeds every rule id.
func (g *Grammar) ReduceN() int {
	if g.reduceN > 0 {
		return g.reduceN
	}
	return len(g.Rules)
}

// SymbolName returns the display name of tok, or "?N" for unknown ids.
func (g *Grammar) SymbolName(tok TokenID) string {
	if t := g.Token(tok); t != nil {
		return t.Name
	}
	return "?" + strconv.Itoa(int(tok))
}

// LHSName is the display name of the rule's left-hand symbol.
func (g *Grammar) LHSName(id RuleID) string {
	if r := g.Rule(id); r != nil {
		return g.SymbolName(r.LHS)
	}
	return "?"
}

// ConflictCounts sums recorded conflicts over all states.
func (g *Grammar) ConflictCounts() (sr, rr int) {
	for _, s := range g.States {
		sr += len(s.SRConflicts)
		rr += len(s.RRConflicts)
	}
	return sr, rr
}
