package testkit

import (
	"fmt"

	"racc/internal/grammar"
	"racc/internal/tables"
)

// CheckActionAgreement verifies that packed and flat lookups agree with the
// encoded model for every (state, terminal) pair: explicit actions resolve
// to their own code, everything else to the state default.
func CheckActionAgreement(g *grammar.Grammar, flat *tables.FlatTables, packed *tables.PackedTables) error {
	enc := tables.NewEncoder(g)
	for _, s := range g.States {
		defCode, err := enc.Encode(s.Default)
		if err != nil {
			return err
		}
		for _, tok := range g.Terminals() {
			want := defCode
			if act, ok := s.ActionOn(tok.ID); ok {
				if want, err = enc.Encode(act); err != nil {
					return err
				}
			}
			gotFlat, err := flat.LookupAction(int(s.ID), int(tok.ID))
			if err != nil {
				return fmt.Errorf("flat: %w", err)
			}
			gotPacked, err := packed.LookupAction(int(s.ID), int(tok.ID))
			if err != nil {
				return fmt.Errorf("packed: %w", err)
			}
			if gotFlat != want || gotPacked != want {
				return fmt.Errorf("state %d token %s: flat=%d packed=%d want=%d",
					s.ID, tok.Name, gotFlat, gotPacked, want)
			}
		}
	}
	return nil
}

// CheckGotoAgreement verifies every explicit goto of the model through both
// encodings. Pairs without a goto are only checked on the flat side, since
// the packed default answers for them by construction.
func CheckGotoAgreement(g *grammar.Grammar, flat *tables.FlatTables, packed *tables.PackedTables) error {
	for _, s := range g.States {
		for _, nt := range g.Nonterminals() {
			want, has := s.GotoOn(nt.ID)
			gotFlat, okFlat, err := flat.LookupGoto(int(s.ID), int(nt.ID))
			if err != nil {
				return fmt.Errorf("flat: %w", err)
			}
			if okFlat != has || (has && gotFlat != int(want)) {
				return fmt.Errorf("state %d nt %s: flat=(%d,%v) want=(%d,%v)", s.ID, nt.Name, gotFlat, okFlat, want, has)
			}
			if !has {
				continue
			}
			gotPacked, okPacked, err := packed.LookupGoto(int(s.ID), int(nt.ID))
			if err != nil {
				return fmt.Errorf("packed: %w", err)
			}
			if !okPacked || gotPacked != int(want) {
				return fmt.Errorf("state %d nt %s: packed=(%d,%v) want=%d", s.ID, nt.Name, gotPacked, okPacked, want)
			}
		}
	}
	return nil
}

// CheckCheckArray verifies that every check entry names an existing row and
// that the table and check arrays have the same length.
func CheckCheckArray(p *tables.PackedTables, states, nonterms int) error {
	if len(p.ActionTable) != len(p.ActionCheck) {
		return fmt.Errorf("action table/check length mismatch: %d != %d", len(p.ActionTable), len(p.ActionCheck))
	}
	if len(p.GotoTable) != len(p.GotoCheck) {
		return fmt.Errorf("goto table/check length mismatch: %d != %d", len(p.GotoTable), len(p.GotoCheck))
	}
	for i, c := range p.ActionCheck {
		if c < 0 || c >= states {
			return fmt.Errorf("action_check[%d] = %d out of [0, %d)", i, c, states)
		}
	}
	for i, c := range p.GotoCheck {
		if c < 0 || c >= nonterms {
			return fmt.Errorf("goto_check[%d] = %d out of [0, %d)", i, c, nonterms)
		}
	}
	return nil
}
