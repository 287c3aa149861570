package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"racc/internal/diag"
	"racc/internal/emit"
	"racc/internal/grammar"
	"racc/internal/observ"
	"racc/internal/report"
	"racc/internal/tablefile"
	"racc/internal/tables"
	"racc/internal/version"
)

// TablesRequest describes one table emission.
type TablesRequest struct {
	ModelPath string
	Encoding  tables.Encoding
	Jobs      int

	// Output is the path of the generated table code. When empty the code
	// goes to Out.
	Output string
	Out    io.Writer

	// BinaryPath, when set, also receives the tables in binary form.
	BinaryPath string
	// VerbosePath, when set, receives the human-readable state report.
	VerbosePath string
	Debug       bool

	DebugTable bool
	Cache      *tablefile.Cache

	MaxDiagnostics int
	Progress       ProgressSink
	Timer          *observ.Timer
}

// TablesResult is what EmitTables produced. Bag is always set, even when an
// error is returned.
type TablesResult struct {
	Grammar  *grammar.Grammar
	Tables   *tables.Result
	Bag      *diag.Bag
	CacheHit bool
}

// EmitTables loads the model, builds the tables and writes every requested
// output. Conflicts are reported as warnings and never stop emission; an
// internal consistency failure stops it before anything is written.
func EmitTables(ctx context.Context, req *TablesRequest) (res *TablesResult, err error) {
	r := newRun(ctx, "tables", req.Progress, req.Timer, req.MaxDiagnostics)
	defer func() { r.finish(err) }()
	ctx = r.ctx(ctx)
	res = &TablesResult{Bag: r.bag}

	for _, st := range req.Stages() {
		r.sink.OnEvent(Event{Stage: st, Status: StatusQueued})
	}

	m, err := r.loadModel(ctx, req.ModelPath)
	if err != nil {
		return res, err
	}
	res.Grammar = m.g
	report.Diagnose(m.g, m.path, r.reporter)

	enc := req.Encoding
	if enc == "" {
		enc = tables.EncodingPacked
	}
	err = r.stage(ctx, StageTables, func() (string, error) {
		var key tablefile.Key
		if req.Cache != nil {
			key = tablefile.KeyFor(m.content, enc)
			cached, ok, err := req.Cache.Get(key)
			if err != nil {
				return "", err
			}
			if ok {
				res.Tables, res.CacheHit = cached, true
				return "cache hit " + key.String()[:12], nil
			}
		}
		built, err := tables.Build(ctx, m.g, tables.Options{Encoding: enc, Jobs: req.Jobs})
		if err != nil {
			r.reportBuildError(m.path, err)
			return "", err
		}
		res.Tables = built
		if req.Cache != nil {
			if err := req.Cache.Put(key, built); err != nil {
				return "", fmt.Errorf("cache: %w", err)
			}
		}
		return string(enc), nil
	})
	if err != nil {
		return res, err
	}

	err = r.stage(ctx, StageSerialize, func() (string, error) {
		var buf bytes.Buffer
		opts := emit.Options{Version: version.Version, DebugTable: req.DebugTable}
		if err := emit.WriteCode(&buf, m.g, res.Tables, opts); err != nil {
			return "", err
		}
		if req.Output == "" {
			if req.Out == nil {
				return "", errors.New("no output destination")
			}
			_, err := req.Out.Write(buf.Bytes())
			return strconv.Itoa(buf.Len()) + " bytes", err
		}
		if err := writeFileAtomic(req.Output, buf.Bytes()); err != nil {
			return "", err
		}
		return req.Output, nil
	})
	if err != nil {
		return res, err
	}

	if req.BinaryPath != "" {
		err = r.stage(ctx, StageBinary, func() (string, error) {
			return req.BinaryPath, tablefile.WriteFile(req.BinaryPath, res.Tables)
		})
		if err != nil {
			return res, err
		}
	}

	if req.VerbosePath != "" {
		err = r.stage(ctx, StageReport, func() (string, error) {
			return req.VerbosePath, writeVerbose(req.VerbosePath, m.g, req.Debug)
		})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// reportBuildError turns a table build failure into a diagnostic.
func (r *run) reportBuildError(file string, err error) {
	var ierr *tables.InternalError
	if errors.As(err, &ierr) {
		tok := int(ierr.Token)
		if ierr.Token == tables.DefaultTokenID {
			tok = -1
		}
		diag.ReportError(r.reporter, diag.TblInternalAction, diag.StateSite(file, int(ierr.State), tok),
			ierr.Error()).Emit()
		return
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		diag.ReportError(r.reporter, diag.TblInternalAction, diag.FileSite(file), err.Error()).Emit()
	}
}

func writeVerbose(path string, g *grammar.Grammar, debug bool) error {
	var buf bytes.Buffer
	if err := report.WriteUseless(&buf, g); err != nil {
		return err
	}
	if err := report.Write(&buf, g, report.Options{Debug: debug}); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic replaces path with data via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
