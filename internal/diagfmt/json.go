package diagfmt

import (
	"encoding/json"
	"io"

	"racc/internal/diag"
)

// LocationJSON представляет место в модели для JSON
type LocationJSON struct {
	File  string `json:"file,omitempty"`
	State *int   `json:"state,omitempty"`
	Token *int   `json:"token,omitempty"`
	Rule  *int   `json:"rule,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity diag.Severity `json:"severity"`
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Location LocationJSON  `json:"location"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func optional(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func makeLocation(s diag.Site, mode PathMode, baseDir string) LocationJSON {
	return LocationJSON{
		File:  formatPath(s.File, mode, baseDir),
		State: optional(s.State),
		Token: optional(s.Token),
		Rule:  optional(s.Rule),
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		dj := DiagnosticJSON{
			Severity: d.Severity,
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, opts.PathMode, opts.BaseDir),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, n := range d.Notes {
				dj.Notes[j] = NoteJSON{Message: n.Msg, Location: makeLocation(n.Site, opts.PathMode, opts.BaseDir)}
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
