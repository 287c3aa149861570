package tables

import (
	"context"

	"racc/internal/grammar"
	"racc/internal/trace"
)

// PackedTables is the row-displacement encoding. All rows of a table share
// one slice; Check tells which row owns a slot.
//
// Action lookup for (state, tok):
//
//	i := ActionPointer[state] + tok
//	if ActionCheck[i] == state && ActionTable[i] is set: ActionTable[i]
//	else: ActionDefault[state]
//
// Goto lookup for (state, nt) uses column nt-NtBase the same way with
// GotoPointer/GotoCheck/GotoTable and falls back to GotoDefault.
type PackedTables struct {
	ActionTable   []Cell
	ActionCheck   []int
	ActionDefault []int
	ActionPointer []Cell

	GotoTable   []Cell
	GotoCheck   []int
	GotoPointer []Cell
	GotoDefault []Cell

	NtBase int
}

// packedRow is one action row or goto column trimmed to [min, max).
// cells == nil means the row has no entries and gets a nil pointer.
type packedRow struct {
	key   int
	min   int
	cells []Cell
}

// trimRow cuts dense down to its first..last present entry.
func trimRow(key int, dense []Cell) packedRow {
	lo := -1
	hi := -1
	for i, c := range dense {
		if !c.Valid {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i + 1
	}
	if lo < 0 {
		return packedRow{key: key}
	}
	cells := make([]Cell, hi-lo)
	copy(cells, dense[lo:hi])
	return packedRow{key: key, min: lo, cells: cells}
}

// packer owns the shared arrays of one table while rows are committed.
type packer struct {
	table []Cell
	check []int
}

// commit appends r and returns its pointer. Rows must be committed in key order.
func (p *packer) commit(r packedRow) Cell {
	if r.cells == nil {
		return Nil
	}
	ptr := len(p.table) - r.min
	for range r.cells {
		p.check = append(p.check, r.key)
	}
	p.table = append(p.table, r.cells...)
	return Some(ptr)
}

// actionRow builds the dense row of s indexed by token id and trims it.
func actionRow(s *grammar.State, enc Encoder) (packedRow, error) {
	key := int(s.ID)
	if len(s.Actions) == 0 {
		return packedRow{key: key}, nil
	}
	width := 0
	for _, ta := range s.Actions {
		width = max(width, int(ta.Token)+1)
	}
	dense := make([]Cell, width)
	for _, ta := range s.Actions {
		code, err := enc.encodeAt(s.ID, ta.Token, ta.Action)
		if err != nil {
			return packedRow{}, err
		}
		dense[ta.Token] = Some(code)
	}
	return trimRow(key, dense), nil
}

// gotoColumn builds the column of nonterminal nt over all states, extracts
// the default destination and trims what is left.
//
// The default is the destination reached from the most states, provided it is
// reached more than once. Ties go to the smallest destination id. Every slot
// equal to the default is cleared, so those states resolve through
// GotoDefault alone. Cleared slots at either end are trimmed away with the
// rest, so GotoTable and GotoCheck are shorter than a layout that keeps
// them as nil cells; lookups give the same destinations either way.
func gotoColumn(g *grammar.Grammar, nt grammar.TokenID) (packedRow, Cell) {
	key := int(nt - g.NtBase)
	col := make([]Cell, len(g.States))
	freq := make([]int, len(g.States))
	for _, s := range g.States {
		dest, ok := s.GotoOn(nt)
		if !ok {
			continue
		}
		col[s.ID] = Some(int(dest))
		freq[dest]++
	}

	best, bestCount := 0, 0
	for dest, n := range freq {
		if n > bestCount {
			best, bestCount = dest, n
		}
	}
	dflt := Nil
	if bestCount > 1 {
		dflt = Some(best)
		for i, c := range col {
			if c.Valid && c.Value == best {
				col[i] = Nil
			}
		}
	}
	return trimRow(key, col), dflt
}

// BuildPacked lays out the packed tables of g. Rows are computed by up to
// jobs workers and committed in id order, so the result does not depend on jobs.
func BuildPacked(ctx context.Context, g *grammar.Grammar, enc Encoder, jobs int) (*PackedTables, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	out := &PackedTables{NtBase: int(g.NtBase)}

	span := trace.Begin(tracer, trace.ScopePass, "packed-action", parent)
	rows, err := computeRows(ctx, jobs, len(g.States), func(i int) (packedRow, error) {
		rs := trace.Begin(tracer, trace.ScopeRow, "action-row", span.ID())
		r, err := actionRow(g.States[i], enc)
		rs.WithExtra("state", itoa(i)).End("")
		return r, err
	})
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	var ap packer
	out.ActionDefault = make([]int, 0, len(g.States))
	out.ActionPointer = make([]Cell, 0, len(g.States))
	for i, s := range g.States {
		code, err := enc.encodeAt(s.ID, DefaultTokenID, s.Default)
		if err != nil {
			span.End(err.Error())
			return nil, err
		}
		out.ActionDefault = append(out.ActionDefault, code)
		out.ActionPointer = append(out.ActionPointer, ap.commit(rows[i]))
	}
	out.ActionTable, out.ActionCheck = ap.table, ap.check
	span.WithExtra("entries", itoa(len(ap.table))).End("")

	span = trace.Begin(tracer, trace.ScopePass, "packed-goto", parent)
	nts := g.Nonterminals()
	type column struct {
		row  packedRow
		dflt Cell
	}
	cols, err := computeRows(ctx, jobs, len(nts), func(i int) (column, error) {
		rs := trace.Begin(tracer, trace.ScopeRow, "goto-column", span.ID())
		r, d := gotoColumn(g, nts[i].ID)
		rs.WithExtra("token", nts[i].Name).End("")
		return column{row: r, dflt: d}, nil
	})
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	var gp packer
	out.GotoPointer = make([]Cell, 0, len(nts))
	out.GotoDefault = make([]Cell, 0, len(nts))
	for _, c := range cols {
		out.GotoDefault = append(out.GotoDefault, c.dflt)
		out.GotoPointer = append(out.GotoPointer, gp.commit(c.row))
	}
	out.GotoTable, out.GotoCheck = gp.table, gp.check
	span.WithExtra("entries", itoa(len(gp.table))).End("")

	return out, nil
}
