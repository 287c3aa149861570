package report

import (
	"fmt"

	"racc/internal/diag"
	"racc/internal/grammar"
)

// Diagnose reports one warning per recorded conflict descriptor and per rule
// of a useless nonterminal. Messages name the losing rule, so two descriptors
// on one state and token never deduplicate. Conflicts never stop emission.
func Diagnose(g *grammar.Grammar, file string, r diag.Reporter) {
	for _, s := range g.States {
		for _, c := range s.SRConflicts {
			tok := g.SymbolName(c.Shift)
			diag.ReportWarning(r, diag.TblShiftReduce, diag.StateSite(file, int(s.ID), int(c.Shift)),
				fmt.Sprintf("state %d: shift/reduce conflict on %s (rule %d)", s.ID, tok, c.Reduce)).
				WithNote(diag.RuleSite(file, int(c.Reduce)),
					fmt.Sprintf("reduce using rule %d (%s) lost to shift", c.Reduce, g.LHSName(c.Reduce))).
				Emit()
		}
		for _, c := range s.RRConflicts {
			tok := g.SymbolName(c.Token)
			diag.ReportWarning(r, diag.TblReduceReduce, diag.StateSite(file, int(s.ID), int(c.Token)),
				fmt.Sprintf("state %d: reduce/reduce conflict on %s (rule %d)", s.ID, tok, c.LowPrec)).
				WithNote(diag.RuleSite(file, int(c.LowPrec)),
					fmt.Sprintf("reduce using rule %d (%s) has lower precedence", c.LowPrec, g.LHSName(c.LowPrec))).
				Emit()
		}
	}
	for _, tok := range g.Tokens {
		if !tok.Useless {
			continue
		}
		for _, id := range tok.Rules {
			diag.ReportWarning(r, diag.TblNeverReduced, diag.RuleSite(file, int(id)),
				fmt.Sprintf("rule %d (%s) never reduced", id, tok.Name)).Emit()
		}
	}
}
