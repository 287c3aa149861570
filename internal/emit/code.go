package emit

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"racc/internal/grammar"
	"racc/internal/tables"
)

// Options configures WriteCode.
type Options struct {
	// Version goes into the header line.
	Version string
	// DebugTable adds Racc_token_to_s_table and sets Racc_debug_parser.
	DebugTable bool
}

// packedArg is the order of Racc_arg.
var packedArg = []string{
	"Racc_action_table",
	"Racc_action_check",
	"Racc_action_default",
	"Racc_action_pointer",
	"Racc_goto_table",
	"Racc_goto_check",
	"Racc_goto_default",
	"Racc_goto_pointer",
	"Racc_nt_base",
	"Racc_reduce_table",
	"Racc_token_table",
	"Racc_shift_n",
	"Racc_reduce_n",
}

// WriteCode writes the table file for res. Nothing is written to w until
// the whole file has been rendered.
func WriteCode(w io.Writer, g *grammar.Grammar, res *tables.Result, opts Options) error {
	if res == nil || (res.Flat == nil && res.Packed == nil) {
		return fmt.Errorf("emit: empty table result")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "##### racc %s generates ###\n\n", opts.Version)

	writeReduceTable(&buf, g, res.Sentinels)
	for _, arr := range res.Arrays() {
		// ошибки bytes.Buffer не возвращает
		_ = WriteArray(&buf, ArrayName(arr.Name), arr.Cells)
	}
	writeTokenTable(&buf, g)
	if res.Packed != nil {
		fmt.Fprintf(&buf, "Racc_nt_base = %d\n\n", res.NtBase)
		buf.WriteString("Racc_arg = [\n ")
		buf.WriteString(strings.Join(packedArg, ",\n "))
		buf.WriteString(" ]\n\n")
	}
	if opts.DebugTable {
		buf.WriteString("Racc_debug_parser = true\n\n")
		buf.WriteString("Racc_token_to_s_table = [\n")
		names := make([]string, len(g.Tokens))
		for i, tok := range g.Tokens {
			names[i] = singleQuote(tok.Name)
		}
		buf.WriteString(strings.Join(names, ",\n"))
		buf.WriteString("]\n\n")
	} else {
		buf.WriteString("Racc_debug_parser = false\n\n")
	}
	buf.WriteString("##### racc system variables end #####\n\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// ArrayName maps a table name to its constant in the table file.
func ArrayName(name string) string {
	return "Racc_" + name
}

// writeReduceTable writes (size, lhs, method) triples for rules 1.., after
// the error placeholder that stands for rule 0.
func writeReduceTable(buf *bytes.Buffer, g *grammar.Grammar, s tables.Sentinels) {
	buf.WriteString("Racc_reduce_table = [\n")
	buf.WriteString(" 0, 0, :racc_error,")
	sep := "\n"
	for _, r := range g.Rules {
		if r.ID == 0 {
			continue
		}
		buf.WriteString(sep)
		sep = ",\n"
		method := "none"
		if r.HasAction() {
			method = fmt.Sprint(r.ID)
		}
		fmt.Fprintf(buf, " %d, %d, :_reduce_%s", r.Size(), r.LHS, method)
	}
	buf.WriteString(" ]\n\n")
	fmt.Fprintf(buf, "Racc_reduce_n = %d\n\n", s.Reduce)
	fmt.Fprintf(buf, "Racc_shift_n = %d\n\n", s.Shift)
}

func writeTokenTable(buf *bytes.Buffer, g *grammar.Grammar) {
	buf.WriteString("Racc_token_table = {")
	sep := "\n"
	for _, tok := range g.Terminals() {
		buf.WriteString(sep)
		sep = ",\n"
		fmt.Fprintf(buf, " %s => %d", TokenLiteral(tok.Name), tok.ID)
	}
	buf.WriteString(" }\n\n")
}

// TokenLiteral is the key a token has in Racc_token_table: false for the
// end-of-input token, a double-quoted string for quoted literals like '+',
// a symbol otherwise.
func TokenLiteral(name string) string {
	switch {
	case name == "$end":
		return "false"
	case len(name) >= 2 && (name[0] == '\'' || name[0] == '"') && name[len(name)-1] == name[0]:
		return doubleQuote(name[1 : len(name)-1])
	default:
		return ":" + name
	}
}

func doubleQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '#':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func singleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
