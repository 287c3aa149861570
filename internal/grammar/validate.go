package grammar

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural problem found in a model.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid model: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid model (%d problems):\n  %s", len(e.Problems), strings.Join(e.Problems, "\n  "))
}

type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

// Validate checks the invariants the table builders rely on. It returns a
// *ValidationError or nil.
func (g *Grammar) Validate() error {
	var p problems

	seenNonterm := false
	for i, t := range g.Tokens {
		if t == nil {
			p.addf("token #%d is missing", i)
			continue
		}
		if int(t.ID) != i {
			p.addf("token %q has id %d at position %d", t.Name, t.ID, i)
		}
		if t.Terminal && seenNonterm {
			p.addf("terminal %q (id %d) follows a nonterminal; ranges must be disjoint", t.Name, t.ID)
		}
		if !t.Terminal {
			seenNonterm = true
		}
	}

	for i, r := range g.Rules {
		if r == nil {
			p.addf("rule #%d is missing", i)
			continue
		}
		if int(r.ID) != i {
			p.addf("rule %d at position %d", r.ID, i)
		}
		if lhs := g.Token(r.LHS); lhs == nil {
			p.addf("rule %d: unknown lhs token %d", r.ID, r.LHS)
		} else if lhs.Terminal {
			p.addf("rule %d: lhs %q is a terminal", r.ID, lhs.Name)
		}
		for _, id := range r.RHS {
			if g.Token(id) == nil {
				p.addf("rule %d: unknown rhs token %d", r.ID, id)
			}
		}
	}

	shiftN, reduceN := g.ShiftN(), g.ReduceN()
	if len(g.Rules) > reduceN {
		p.addf("reduce_n %d is below the rule count %d", reduceN, len(g.Rules))
	}

	for i, s := range g.States {
		if s == nil {
			p.addf("state #%d is missing", i)
			continue
		}
		if int(s.ID) != i {
			p.addf("state %d at position %d", s.ID, i)
		}
		seen := make(map[TokenID]bool, len(s.Actions))
		for _, ta := range s.Actions {
			tok := g.Token(ta.Token)
			switch {
			case tok == nil:
				p.addf("state %d: action on unknown token %d", s.ID, ta.Token)
			case !tok.Terminal:
				p.addf("state %d: action on nonterminal %q", s.ID, tok.Name)
			}
			if seen[ta.Token] {
				p.addf("state %d: duplicate action on token %d", s.ID, ta.Token)
			}
			seen[ta.Token] = true
			g.checkAction(&p, s.ID, ta.Action, shiftN, reduceN)
		}
		g.checkAction(&p, s.ID, s.Default, shiftN, reduceN)

		seenGoto := make(map[TokenID]bool, len(s.Gotos))
		for _, gt := range s.Gotos {
			tok := g.Token(gt.Token)
			switch {
			case tok == nil:
				p.addf("state %d: goto on unknown token %d", s.ID, gt.Token)
			case tok.Terminal:
				p.addf("state %d: goto on terminal %q", s.ID, tok.Name)
			}
			if seenGoto[gt.Token] {
				p.addf("state %d: duplicate goto on token %d", s.ID, gt.Token)
			}
			seenGoto[gt.Token] = true
			if g.State(gt.Target) == nil {
				p.addf("state %d: goto to unknown state %d", s.ID, gt.Target)
			}
		}

		for _, it := range append(append([]Item(nil), s.Seed...), s.Closure...) {
			r := g.Rule(it.Rule)
			if r == nil {
				p.addf("state %d: item refers to unknown rule %d", s.ID, it.Rule)
				continue
			}
			if it.Dot < 0 || it.Dot > r.Size() {
				p.addf("state %d: item dot %d outside rule %d", s.ID, it.Dot, r.ID)
			}
		}
		for _, c := range s.SRConflicts {
			if g.Token(c.Shift) == nil || g.Rule(c.Reduce) == nil {
				p.addf("state %d: shift/reduce conflict refers to unknown token %d or rule %d", s.ID, c.Shift, c.Reduce)
			}
		}
		for _, c := range s.RRConflicts {
			if g.Token(c.Token) == nil || g.Rule(c.LowPrec) == nil {
				p.addf("state %d: reduce/reduce conflict refers to unknown token %d or rule %d", s.ID, c.Token, c.LowPrec)
			}
		}
	}

	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Problems: p}
}

func (g *Grammar) checkAction(p *problems, state StateID, act Action, shiftN, reduceN int) {
	switch a := act.(type) {
	case nil:
		p.addf("state %d: missing action", state)
	case ShiftAction:
		if g.State(a.Target) == nil {
			p.addf("state %d: shift to unknown state %d", state, a.Target)
		}
		if int(a.Target) >= shiftN {
			p.addf("state %d: shift target %d collides with shift_n %d", state, a.Target, shiftN)
		}
	case ReduceAction:
		if g.Rule(a.Rule) == nil {
			p.addf("state %d: reduce by unknown rule %d", state, a.Rule)
		}
		if int(a.Rule) >= reduceN {
			p.addf("state %d: rule %d collides with reduce_n %d", state, a.Rule, reduceN)
		}
	}
}
