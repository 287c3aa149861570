package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"racc/internal/diag"
	"racc/internal/grammar"
	"racc/internal/trace"
)

// loaded is a parsed and validated model together with its raw bytes.
type loaded struct {
	path    string
	content []byte
	g       *grammar.Grammar
}

// loadModel reads and validates the model at path. Problems go to bag as
// MDL diagnostics; the returned error is non-nil whenever the model is
// unusable.
func (r *run) loadModel(ctx context.Context, path string) (*loaded, error) {
	var content []byte
	err := r.stage(ctx, StageLoad, func() (string, error) {
		var err error
		content, err = os.ReadFile(path)
		if err != nil {
			diag.ReportError(r.reporter, diag.MdlIO, diag.FileSite(path), err.Error()).Emit()
			return "", err
		}
		return strconv.Itoa(len(content)) + " bytes", nil
	})
	if err != nil {
		return nil, err
	}

	var g *grammar.Grammar
	err = r.stage(ctx, StageValidate, func() (string, error) {
		var err error
		g, err = grammar.Load(bytes.NewReader(content))
		if err != nil {
			var verr *grammar.ValidationError
			if errors.As(err, &verr) {
				b := diag.ReportError(r.reporter, diag.MdlInvalid, diag.FileSite(path),
					fmt.Sprintf("invalid grammar model: %d problems", len(verr.Problems)))
				for _, p := range verr.Problems {
					b.WithNote(diag.FileSite(path), p)
				}
				b.Emit()
			} else {
				diag.ReportError(r.reporter, diag.MdlInvalid, diag.FileSite(path), err.Error()).Emit()
			}
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return fmt.Sprintf("%d tokens, %d rules, %d states", len(g.Tokens), len(g.Rules), len(g.States)), nil
	})
	if err != nil {
		return nil, err
	}
	trace.Point(r.tracer, trace.ScopePass, "model", path, r.span.ID())
	return &loaded{path: path, content: content, g: g}, nil
}
