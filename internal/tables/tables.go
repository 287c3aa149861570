// Package tables turns a finished grammar model into runtime parser tables.
//
// Two encodings are available. The flat encoding stores every state's
// actions as (token, code) pairs behind a per-state offset. The packed
// encoding uses row displacement: all rows live in one shared table, each
// row is addressed through a pointer that may be negative, and a parallel
// check array guards against reading a slot owned by another row. The goto
// table is packed by nonterminal column after the most common destination of
// each column has been moved into a default array.
//
// Every action is mapped to one signed integer by Encoder; see Sentinels for
// the codes reserved for accept and error.
package tables

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"racc/internal/grammar"
	"racc/internal/trace"
)

// Encoding selects the physical table layout.
type Encoding string

const (
	EncodingPacked Encoding = "packed"
	EncodingFlat   Encoding = "flat"
)

// ParseEncoding accepts "packed"/"index" and "flat"/"alist".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "packed", "index":
		return EncodingPacked, nil
	case "flat", "alist":
		return EncodingFlat, nil
	default:
		return "", fmt.Errorf("invalid encoding %q (expected packed|flat)", s)
	}
}

// Options configures Build.
type Options struct {
	Encoding Encoding
	Jobs     int // packed row workers; <= 0 means GOMAXPROCS
}

// Result holds the tables of one encoding.
type Result struct {
	Encoding  Encoding
	Sentinels Sentinels
	NtBase    int

	Flat   *FlatTables
	Packed *PackedTables
}

// Build encodes g with the selected strategy. An *InternalError aborts the
// build and no partial result is returned.
func Build(ctx context.Context, g *grammar.Grammar, opts Options) (*Result, error) {
	enc := NewEncoder(g)
	res := &Result{
		Encoding:  opts.Encoding,
		Sentinels: enc.Sentinels,
		NtBase:    int(g.NtBase),
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tables:"+string(opts.Encoding), trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	var err error
	switch opts.Encoding {
	case EncodingFlat:
		res.Flat, err = BuildFlat(ctx, g, enc)
	case EncodingPacked, "":
		res.Encoding = EncodingPacked
		res.Packed, err = BuildPacked(ctx, g, enc, opts.Jobs)
	default:
		err = fmt.Errorf("unknown encoding %q", opts.Encoding)
	}
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.End("")
	return res, nil
}

// Array is a named table ready for serialization.
type Array struct {
	Name  string
	Cells []Cell
}

// Arrays lists the tables of r in emission order.
func (r *Result) Arrays() []Array {
	switch {
	case r.Flat != nil:
		return []Array{
			{Name: "action_table", Cells: Cells(r.Flat.Action)},
			{Name: "action_table_ptr", Cells: Cells(r.Flat.ActionPointer)},
			{Name: "goto_table", Cells: Cells(r.Flat.Goto)},
			{Name: "goto_table_ptr", Cells: Cells(r.Flat.GotoPointer)},
		}
	case r.Packed != nil:
		p := r.Packed
		return []Array{
			{Name: "action_table", Cells: p.ActionTable},
			{Name: "action_check", Cells: Cells(p.ActionCheck)},
			{Name: "action_default", Cells: Cells(p.ActionDefault)},
			{Name: "action_pointer", Cells: p.ActionPointer},
			{Name: "goto_table", Cells: p.GotoTable},
			{Name: "goto_check", Cells: Cells(p.GotoCheck)},
			{Name: "goto_pointer", Cells: p.GotoPointer},
			{Name: "goto_default", Cells: p.GotoDefault},
		}
	}
	return nil
}

// Action resolves the encoded action for (state, tok).
func (r *Result) Action(state, tok int) (int, error) {
	switch {
	case r.Flat != nil:
		return r.Flat.LookupAction(state, tok)
	case r.Packed != nil:
		return r.Packed.LookupAction(state, tok)
	}
	return 0, fmt.Errorf("empty result")
}

// Goto resolves the goto destination for (state, nt).
func (r *Result) Goto(state, nt int) (int, bool, error) {
	switch {
	case r.Flat != nil:
		return r.Flat.LookupGoto(state, nt)
	case r.Packed != nil:
		return r.Packed.LookupGoto(state, nt)
	}
	return 0, false, fmt.Errorf("empty result")
}

func itoa(i int) string { return strconv.Itoa(i) }
