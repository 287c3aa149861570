package grammar

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "shift 4", want: ShiftAction{Target: 4}},
		{in: "  Reduce   2 ", want: ReduceAction{Rule: 2}},
		{in: "reduce 0", want: ReduceAction{Rule: 0}},
		{in: "accept", want: AcceptAction{}},
		{in: "error", want: ErrorAction{}},
		{in: "", wantErr: true},
		{in: "shift", wantErr: true},
		{in: "shift -1", wantErr: true},
		{in: "shift x", wantErr: true},
		{in: "accept 1", wantErr: true},
		{in: "goto 3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
			}
			// String() даёт ту же форму, что принимает ParseAction
			back, err := ParseAction(got.String())
			if err != nil || back != got {
				t.Fatalf("ParseAction(%q.String()) = %v, %v", tt.in, back, err)
			}
		})
	}
}

func TestActionTextMarshalNil(t *testing.T) {
	if _, err := (ActionText{}).MarshalText(); err == nil {
		t.Fatal("expected error for nil action")
	}
}
