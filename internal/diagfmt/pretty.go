package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"racc/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<site>: <SEV> <CODE>: <Message>
//
// затем Notes с отступом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan),
	}
	codeColor := color.New(color.Faint)
	noteColor := color.New(color.FgBlue)
	for _, c := range []*color.Color{sevColor[diag.SevError], sevColor[diag.SevWarning], sevColor[diag.SevInfo], codeColor, noteColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range bag.Items() {
		site := siteString(d.Primary, opts.PathMode, opts.BaseDir)
		_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			site,
			sevColor[d.Severity].Sprint(d.Severity.String()),
			codeColor.Sprint(d.Code.ID()),
			d.Message,
		)
		if err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %s: %s\n", noteColor.Sprint("note:"), siteString(n.Site, opts.PathMode, opts.BaseDir), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func siteString(s diag.Site, mode PathMode, baseDir string) string {
	s.File = formatPath(s.File, mode, baseDir)
	return s.String()
}

// Summary is the one-line conflict summary printed after emission, e.g.
// "2 shift/reduce conflicts, 1 reduce/reduce conflict". Empty when there
// are no conflicts.
func Summary(bag *diag.Bag) string {
	sr := bag.Count(diag.TblShiftReduce)
	rr := bag.Count(diag.TblReduceReduce)
	switch {
	case sr == 0 && rr == 0:
		return ""
	case rr == 0:
		return plural(sr, "shift/reduce conflict")
	case sr == 0:
		return plural(rr, "reduce/reduce conflict")
	}
	return plural(sr, "shift/reduce conflict") + ", " + plural(rr, "reduce/reduce conflict")
}

func plural(n int, what string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", what)
	}
	return fmt.Sprintf("%d %ss", n, what)
}
