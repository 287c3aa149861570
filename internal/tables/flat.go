package tables

import (
	"context"

	"racc/internal/grammar"
	"racc/internal/trace"
)

// FlatTables is the association-list encoding. Rows are located directly by
// offset, nothing is shared between rows.
type FlatTables struct {
	// Action holds (token, code) pairs; every state's run ends with
	// (DefaultTokenID, default code).
	Action []int
	// ActionPointer is the offset of each state's run in Action.
	ActionPointer []int
	// Goto holds (nonterminal, state) pairs followed by one guard pair.
	Goto []int
	// GotoPointer is the offset of each state's run in Goto, or NoGotoRow.
	GotoPointer []int
}

// BuildFlat lays out the flat tables of g.
func BuildFlat(ctx context.Context, g *grammar.Grammar, enc Encoder) (*FlatTables, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	span := trace.Begin(tracer, trace.ScopePass, "flat-action", parent)
	disc := make([]int, 0, len(g.States))
	tbl := make([]int, 0, 4*len(g.States))
	for _, s := range g.States {
		if err := ctx.Err(); err != nil {
			span.End("canceled")
			return nil, err
		}
		disc = append(disc, len(tbl))
		for _, ta := range s.Actions {
			code, err := enc.encodeAt(s.ID, ta.Token, ta.Action)
			if err != nil {
				span.End(err.Error())
				return nil, err
			}
			tbl = append(tbl, int(ta.Token), code)
		}
		code, err := enc.encodeAt(s.ID, DefaultTokenID, s.Default)
		if err != nil {
			span.End(err.Error())
			return nil, err
		}
		tbl = append(tbl, DefaultTokenID, code)
	}
	span.WithExtra("entries", itoa(len(tbl))).End("")

	span = trace.Begin(tracer, trace.ScopePass, "flat-goto", parent)
	gdisc := make([]int, 0, len(g.States))
	gtbl := make([]int, 0, 2*len(g.States)+2)
	for _, s := range g.States {
		if len(s.Gotos) == 0 {
			gdisc = append(gdisc, NoGotoRow)
			continue
		}
		gdisc = append(gdisc, len(gtbl))
		for _, gt := range s.Gotos {
			gtbl = append(gtbl, int(gt.Token), int(gt.Target))
		}
	}
	gtbl = append(gtbl, GuardEntry, GuardEntry)
	span.WithExtra("entries", itoa(len(gtbl))).End("")

	return &FlatTables{
		Action:        tbl,
		ActionPointer: disc,
		Goto:          gtbl,
		GotoPointer:   gdisc,
	}, nil
}
