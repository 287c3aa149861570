package driver

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"racc/internal/diag"
	"racc/internal/observ"
	"racc/internal/report"
)

// ReportRequest describes a verbose report run without table emission.
type ReportRequest struct {
	ModelPath string
	Out       io.Writer
	Debug     bool

	MaxDiagnostics int
	Progress       ProgressSink
	Timer          *observ.Timer
}

// Report writes the useless-rule listing and the state report of the model
// to req.Out. The returned bag holds the conflict warnings.
func Report(ctx context.Context, req *ReportRequest) (bag *diag.Bag, err error) {
	r := newRun(ctx, "report", req.Progress, req.Timer, req.MaxDiagnostics)
	defer func() { r.finish(err) }()
	ctx = r.ctx(ctx)

	m, err := r.loadModel(ctx, req.ModelPath)
	if err != nil {
		return r.bag, err
	}
	report.Diagnose(m.g, m.path, r.reporter)

	err = r.stage(ctx, StageReport, func() (string, error) {
		var buf bytes.Buffer
		if err := report.WriteUseless(&buf, m.g); err != nil {
			return "", err
		}
		if err := report.Write(&buf, m.g, report.Options{Debug: req.Debug}); err != nil {
			return "", err
		}
		_, err := req.Out.Write(buf.Bytes())
		return strconv.Itoa(buf.Len()) + " bytes", err
	})
	return r.bag, err
}
