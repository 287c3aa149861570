package emit

import (
	"strings"
	"testing"

	"racc/internal/tables"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		cells []tables.Cell
		want  string
	}{
		{
			name:  "empty",
			cells: nil,
			want:  " ]\n\n",
		},
		{
			name:  "nil and zero differ",
			cells: []tables.Cell{tables.Nil, tables.Some(0), tables.Some(-12)},
			want:  "   nil,     0,   -12 ]\n\n",
		},
		{
			name:  "ten entries fit one line",
			cells: tables.Cells([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}),
			want:  "     1,     2,     3,     4,     5,     6,     7,     8,     9,    10 ]\n\n",
		},
		{
			name:  "eleventh entry starts a new line",
			cells: tables.Cells([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}),
			want:  "     1,     2,     3,     4,     5,     6,     7,     8,     9,    10,\n    11 ]\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.cells); got != tt.want {
				t.Errorf("Render() = %q\nwant       %q", got, tt.want)
			}
		})
	}
}

func TestRenderIsStable(t *testing.T) {
	cells := make([]tables.Cell, 0, 37)
	for i := range 37 {
		if i%4 == 0 {
			cells = append(cells, tables.Nil)
			continue
		}
		cells = append(cells, tables.Some(i*-3))
	}
	first, second := Render(cells), Render(cells)
	if first != second {
		t.Fatal("two renders of the same array differ")
	}
	lines := strings.Split(strings.TrimSuffix(first, closing), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d data lines, want 4", len(lines))
	}
	// все полные строки одинаковой ширины
	for i, l := range lines[:3] {
		if len(l) != len(lines[0]) {
			t.Errorf("line %d has width %d, want %d", i, len(l), len(lines[0]))
		}
		if strings.Count(l, ",") != perLine {
			t.Errorf("line %d: %q", i, l)
		}
	}
	if strings.HasSuffix(lines[3], ",") {
		t.Errorf("trailing separator on last line: %q", lines[3])
	}
}

func TestWriteArray(t *testing.T) {
	var sb strings.Builder
	if err := WriteArray(&sb, "Racc_goto_default", []tables.Cell{tables.Nil, tables.Some(3)}); err != nil {
		t.Fatal(err)
	}
	want := "Racc_goto_default = [\n   nil,     3 ]\n\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}
