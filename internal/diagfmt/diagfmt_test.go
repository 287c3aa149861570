package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"racc/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	r := diag.BagReporter{Bag: bag}
	diag.ReportWarning(r, diag.TblShiftReduce, diag.StateSite("grammars/expr.toml", 5, 2),
		"shift/reduce conflict on '+'").
		WithNote(diag.RuleSite("grammars/expr.toml", 1), "reduce using rule 1 (exp) lost").
		Emit()
	diag.ReportWarning(r, diag.TblNeverReduced, diag.RuleSite("grammars/expr.toml", 4), "rule 4 (junk) never reduced").Emit()
	bag.Sort()
	return bag
}

func TestPretty(t *testing.T) {
	tests := []struct {
		name string
		opts PrettyOpts
		want string
	}{
		{
			name: "plain",
			opts: PrettyOpts{},
			want: "grammars/expr.toml: rule 4: WARNING TBL4003: rule 4 (junk) never reduced\n" +
				"grammars/expr.toml: state 5: token 2: WARNING TBL4001: shift/reduce conflict on '+'\n",
		},
		{
			name: "basename with notes",
			opts: PrettyOpts{PathMode: PathModeBasename, ShowNotes: true},
			want: "expr.toml: rule 4: WARNING TBL4003: rule 4 (junk) never reduced\n" +
				"expr.toml: state 5: token 2: WARNING TBL4001: shift/reduce conflict on '+'\n" +
				"  note: expr.toml: rule 1: reduce using rule 1 (exp) lost\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, sampleBag(), tt.opts); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("expected ANSI escapes with Color")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{IncludeNotes: true, Max: 5}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	d := out.Diagnostics[1]
	if d.Code != "TBL4001" || d.Severity != diag.SevWarning {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.State == nil || *d.Location.State != 5 || d.Location.Rule != nil {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Rule == nil || *d.Notes[0].Location.Rule != 1 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), JSONOpts{Max: 1})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
}

func TestSummary(t *testing.T) {
	bag := diag.NewBag(10)
	if got := Summary(bag); got != "" {
		t.Errorf("empty bag summary = %q", got)
	}
	bag.Add(diag.New(diag.SevWarning, diag.TblShiftReduce, diag.StateSite("", 1, 1), ""))
	bag.Add(diag.New(diag.SevWarning, diag.TblShiftReduce, diag.StateSite("", 2, 1), ""))
	bag.Add(diag.New(diag.SevWarning, diag.TblReduceReduce, diag.StateSite("", 2, 1), ""))
	if got, want := Summary(bag), "2 shift/reduce conflicts, 1 reduce/reduce conflict"; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}
