package emit_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"racc/internal/emit"
	"racc/internal/tables"
	"racc/internal/testkit"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func writeExpr(t *testing.T, encoding tables.Encoding, opts emit.Options) string {
	t.Helper()
	g := testkit.ExprGrammar()
	res, err := tables.Build(context.Background(), g, tables.Options{Encoding: encoding})
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := emit.WriteCode(&sb, g, res, opts); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}

func TestWriteCodePacked(t *testing.T) {
	out := writeExpr(t, tables.EncodingPacked, emit.Options{Version: "0.1.0"})

	wantInOrder := []string{
		"##### racc 0.1.0 generates ###\n\n",
		"Racc_reduce_table = [\n 0, 0, :racc_error,\n 3, 5, :_reduce_1,\n 1, 5, :_reduce_none ]\n\n",
		"Racc_reduce_n = 3\n\n",
		"Racc_shift_n = 6\n\n",
		"Racc_action_table = [\n     2,     3,   nil,     4,     2,     4 ]\n\n",
		"Racc_action_check = [\n     0,     1,     1,     1,     4,     5 ]\n\n",
		"Racc_action_default = [\n    -3,    -3,    -2,     6,    -3,    -1 ]\n\n",
		"Racc_action_pointer = [\n    -3,     1,   nil,   nil,     1,     3 ]\n\n",
		"Racc_goto_table = [\n     1,   nil,   nil,   nil,     5 ]\n\n",
		"Racc_goto_check = [\n     1,     1,     1,     1,     1 ]\n\n",
		"Racc_goto_pointer = [\n   nil,     0 ]\n\n",
		"Racc_goto_default = [\n   nil,   nil ]\n\n",
		"Racc_token_table = {\n false => 0,\n :error => 1,\n \"+\" => 2,\n :NUM => 3 }\n\n",
		"Racc_nt_base = 4\n\n",
		"Racc_arg = [\n Racc_action_table,\n",
		" Racc_shift_n,\n Racc_reduce_n ]\n\n",
		"Racc_debug_parser = false\n\n",
		"##### racc system variables end #####\n\n",
	}
	pos := 0
	for _, part := range wantInOrder {
		i := strings.Index(out[pos:], part)
		if i < 0 {
			t.Fatalf("missing or out of order: %q\nin:\n%s", part, out)
		}
		pos += i + len(part)
	}
	if strings.Contains(out, "Racc_token_to_s_table") {
		t.Error("token-to-string table emitted without DebugTable")
	}
}

func TestWriteCodeFlat(t *testing.T) {
	out := writeExpr(t, tables.EncodingFlat, emit.Options{Version: "0.1.0", DebugTable: true})

	for _, part := range []string{
		"Racc_action_table_ptr = [\n     0,     4,    10,    12,    14,    18 ]\n\n",
		"Racc_goto_table = [\n     5,     1,     5,     5,    -1,    -1 ]\n\n",
		"Racc_goto_table_ptr = [\n     0,    -1,    -1,    -1,     2,    -1 ]\n\n",
		"Racc_debug_parser = true\n\n",
		"Racc_token_to_s_table = [\n'$end',\n'error',\n'\\'+\\'',\n'NUM',\n'$start',\n'exp']\n\n",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("missing %q", part)
		}
	}
	for _, absent := range []string{"Racc_nt_base", "Racc_arg", "Racc_action_check"} {
		if strings.Contains(out, absent) {
			t.Errorf("flat output contains %s", absent)
		}
	}
}

func TestWriteCodeDeterministic(t *testing.T) {
	a := writeExpr(t, tables.EncodingPacked, emit.Options{Version: "x"})
	b := writeExpr(t, tables.EncodingPacked, emit.Options{Version: "x"})
	if a != b {
		t.Fatal("output differs between runs")
	}
}

func TestWriteCodeErrors(t *testing.T) {
	g := testkit.ExprGrammar()
	if err := emit.WriteCode(&strings.Builder{}, g, &tables.Result{}, emit.Options{}); err == nil {
		t.Error("expected error for empty result")
	}
	res, err := tables.Build(context.Background(), g, tables.Options{Encoding: tables.EncodingFlat})
	if err != nil {
		t.Fatal(err)
	}
	if err := emit.WriteCode(failWriter{}, g, res, emit.Options{}); err == nil {
		t.Error("expected write error")
	}
}

func TestTokenLiteral(t *testing.T) {
	tests := map[string]string{
		"$end":  "false",
		"NUM":   ":NUM",
		"'+'":   `"+"`,
		`"=="`:  `"=="`,
		`'"'`:   `"\""`,
		"'#'":   `"\#"`,
		"error": ":error",
	}
	for in, want := range tests {
		if got := emit.TokenLiteral(in); got != want {
			t.Errorf("TokenLiteral(%q) = %s, want %s", in, got, want)
		}
	}
}
