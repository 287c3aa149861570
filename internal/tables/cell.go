package tables

const (
	// DefaultTokenID terminates a state's row in the flat action table.
	DefaultTokenID = -1
	// NoGotoRow is the flat goto offset of a state without gotos.
	NoGotoRow = -1
	// GuardEntry fills the pair appended after the last flat goto row.
	GuardEntry = -1
)

// Cell is an optional table entry. The zero value is empty and renders as nil.
type Cell struct {
	Value int
	Valid bool
}

// Nil is the empty cell.
var Nil Cell

// Some returns a present cell holding v.
func Some(v int) Cell { return Cell{Value: v, Valid: true} }

// Cells lifts a dense int slice into present cells.
func Cells(vs []int) []Cell {
	out := make([]Cell, len(vs))
	for i, v := range vs {
		out[i] = Some(v)
	}
	return out
}

// Ints lowers cells back to ints; empty cells become 0 and ok reports
// whether every cell was present.
func Ints(cs []Cell) (vs []int, ok bool) {
	vs = make([]int, len(cs))
	ok = true
	for i, c := range cs {
		vs[i] = c.Value
		ok = ok && c.Valid
	}
	return vs, ok
}
