package diag

import (
	"math"
	"testing"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(New(SevWarning, TblShiftReduce, StateSite("g.toml", i, 2), "conflict"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatalf("HasWarnings/HasErrors = %v/%v", b.HasWarnings(), b.HasErrors())
	}
}

func TestNewBagClampsLimit(t *testing.T) {
	if got := NewBag(1 << 20).Cap(); got != math.MaxUint16 {
		t.Errorf("Cap = %d, want %d", got, math.MaxUint16)
	}
	if got := NewBag(-1).Cap(); got != 0 {
		t.Errorf("Cap = %d, want 0", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, TblShiftReduce, StateSite("g.toml", 5, 2), "b"))
	b.Add(New(SevWarning, TblNeverReduced, RuleSite("g.toml", 3), "c"))
	b.Add(New(SevError, TblInternalAction, StateSite("g.toml", 1, 0), "a"))
	b.Add(New(SevWarning, TblShiftReduce, StateSite("g.toml", 5, 2), "b"))
	b.Sort()
	b.Dedup()

	want := []Code{TblNeverReduced, TblInternalAction, TblShiftReduce}
	if b.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", b.Len(), len(want))
	}
	for i, d := range b.Items() {
		if d.Code != want[i] {
			t.Errorf("item %d: code %s, want %s", i, d.Code.ID(), want[i].ID())
		}
	}
	if b.Count(TblShiftReduce) != 1 {
		t.Errorf("Count(TblShiftReduce) = %d", b.Count(TblShiftReduce))
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	rb := ReportWarning(r, TblReduceReduce, StateSite("g.toml", 4, 1), "reduce/reduce").
		WithNote(RuleSite("g.toml", 2), "rule 2 loses")
	rb.Emit()
	rb.Emit()
	ReportWarning(r, TblReduceReduce, StateSite("g.toml", 4, 1), "reduce/reduce").Emit()

	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if n := len(b.Items()[0].Notes); n != 1 {
		t.Fatalf("notes = %d, want 1", n)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		TblShiftReduce:    "TBL4001",
		TblInternalAction: "TBL4100",
		MdlInvalid:        "MDL5001",
		UnknownCode:       "E0000",
	}
	for c, want := range tests {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", c, got, want)
		}
	}
}

func TestSiteString(t *testing.T) {
	tests := []struct {
		site Site
		want string
	}{
		{FileSite("g.toml"), "g.toml"},
		{StateSite("g.toml", 5, 2), "g.toml: state 5: token 2"},
		{RuleSite("", 3), "rule 3"},
		{Site{State: -1, Token: -1, Rule: -1}, "<model>"},
	}
	for _, tt := range tests {
		if got := tt.site.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSeverityText(t *testing.T) {
	for _, sev := range []Severity{SevInfo, SevWarning, SevError} {
		b, err := sev.MarshalText()
		if err != nil {
			t.Fatalf("%v: %v", sev, err)
		}
		var back Severity
		if err := back.UnmarshalText(b); err != nil || back != sev {
			t.Errorf("%s: got %v, %v", b, back, err)
		}
	}
	if _, err := Severity(9).MarshalText(); err == nil {
		t.Error("expected error for invalid severity")
	}
	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	site := StateSite("expr.toml", 5, 2)
	for range 3 {
		ReportWarning(r, TblShiftReduce, site, "state 5: shift/reduce conflict on '+' (rule 1)").Emit()
	}
	ReportWarning(r, TblShiftReduce, site, "state 5: shift/reduce conflict on '+' (rule 2)").Emit()
	if bag.Len() != 2 {
		t.Errorf("bag has %d items, want 2", bag.Len())
	}
	if r.Suppressed() != 2 {
		t.Errorf("suppressed = %d, want 2", r.Suppressed())
	}
}
