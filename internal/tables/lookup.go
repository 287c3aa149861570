package tables

import "fmt"

// LookupAction probes the packed action table the way the runtime parser
// does: the slot at pointer+tok is trusted only if check confirms the state
// owns it, otherwise the state's default applies.
func (t *PackedTables) LookupAction(state, tok int) (int, error) {
	if state < 0 || state >= len(t.ActionDefault) {
		return 0, fmt.Errorf("state %d out of range [0, %d)", state, len(t.ActionDefault))
	}
	if p := t.ActionPointer[state]; p.Valid {
		i := p.Value + tok
		if i >= 0 && i < len(t.ActionTable) && t.ActionCheck[i] == state && t.ActionTable[i].Valid {
			return t.ActionTable[i].Value, nil
		}
	}
	return t.ActionDefault[state], nil
}

// LookupGoto probes the packed goto table for nonterminal nt from state.
// ok is false when neither the column nor its default has a destination.
func (t *PackedTables) LookupGoto(state, nt int) (dest int, ok bool, err error) {
	col := nt - t.NtBase
	if col < 0 || col >= len(t.GotoPointer) {
		return 0, false, fmt.Errorf("token %d is not a nonterminal", nt)
	}
	if p := t.GotoPointer[col]; p.Valid {
		i := p.Value + state
		if i >= 0 && i < len(t.GotoTable) && t.GotoCheck[i] == col && t.GotoTable[i].Valid {
			return t.GotoTable[i].Value, true, nil
		}
	}
	if d := t.GotoDefault[col]; d.Valid {
		return d.Value, true, nil
	}
	return 0, false, nil
}

// LookupAction scans the state's run in the flat action table. The run
// always ends with the DefaultTokenID pair.
func (t *FlatTables) LookupAction(state, tok int) (int, error) {
	if state < 0 || state >= len(t.ActionPointer) {
		return 0, fmt.Errorf("state %d out of range [0, %d)", state, len(t.ActionPointer))
	}
	for i := t.ActionPointer[state]; i+1 < len(t.Action); i += 2 {
		if t.Action[i] == tok || t.Action[i] == DefaultTokenID {
			return t.Action[i+1], nil
		}
	}
	return 0, fmt.Errorf("state %d: action run is not terminated", state)
}

// LookupGoto scans the state's run in the flat goto table. Runs are not
// terminated, so the run ends where the next state's run (or the guard) begins.
func (t *FlatTables) LookupGoto(state, nt int) (dest int, ok bool, err error) {
	if state < 0 || state >= len(t.GotoPointer) {
		return 0, false, fmt.Errorf("state %d out of range [0, %d)", state, len(t.GotoPointer))
	}
	start := t.GotoPointer[state]
	if start == NoGotoRow {
		return 0, false, nil
	}
	end := len(t.Goto) - 2
	for _, p := range t.GotoPointer[state+1:] {
		if p != NoGotoRow {
			end = p
			break
		}
	}
	for i := start; i+1 < len(t.Goto) && i < end; i += 2 {
		if t.Goto[i] == nt {
			return t.Goto[i+1], true, nil
		}
	}
	return 0, false, nil
}
