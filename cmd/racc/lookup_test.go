package main

import (
	"bytes"
	"testing"

	"racc/internal/driver"
	"racc/internal/grammar"
)

func TestPrintLookup(t *testing.T) {
	tests := []struct {
		name string
		res  driver.LookupResult
		want string
	}{
		{
			name: "default reduce",
			res: driver.LookupResult{
				State: 5, Token: &grammar.Token{ID: 3, Name: "NUM", Terminal: true},
				Model: grammar.ReduceAction{Rule: 1}, Default: true,
				Code: -1, Action: grammar.ReduceAction{Rule: 1},
			},
			want: "state 5, token NUM (3)\n" +
				"  model:  reduce 1 (default)\n" +
				"  tables: -1 -> reduce 1 (flat and packed agree)\n",
		},
		{
			name: "goto",
			res: driver.LookupResult{
				State: 4, Token: &grammar.Token{ID: 5, Name: "exp"},
				Goto: 5, HasGoto: true,
			},
			want: "state 4, token exp (5)\n  goto: state 5\n",
		},
		{
			name: "no goto",
			res: driver.LookupResult{
				State: 1, Token: &grammar.Token{ID: 5, Name: "exp"},
			},
			want: "state 1, token exp (5)\n  goto: none\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printLookup(&buf, &tt.res)
			if got := buf.String(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}
