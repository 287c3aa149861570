package driver

import (
	"context"
	"strconv"
	"time"

	"racc/internal/diag"
	"racc/internal/observ"
	"racc/internal/trace"
)

// run is the per-command state shared by the stages.
type run struct {
	tracer   trace.Tracer
	span     *trace.Span
	sink     ProgressSink
	timer    *observ.Timer
	bag      *diag.Bag
	reporter *diag.DedupReporter
}

func newRun(ctx context.Context, name string, sink ProgressSink, timer *observ.Timer, maxDiagnostics int) *run {
	if sink == nil {
		sink = nopSink{}
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	tracer := trace.FromContext(ctx)
	bag := diag.NewBag(maxDiagnostics)
	return &run{
		tracer:   tracer,
		span:     trace.Begin(tracer, trace.ScopeDriver, name, trace.CurrentSpan(ctx).SpanID),
		sink:     sink,
		timer:    timer,
		bag:      bag,
		reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	}
}

// ctx returns ctx with the run's driver span as the current span.
func (r *run) ctx(ctx context.Context) context.Context {
	return trace.WithSpanContext(ctx, trace.SpanContext{SpanID: r.span.ID()})
}

// stage runs fn as one stage: a pass span, a timer phase and progress
// events. fn returns a short detail for the trace and the progress line.
func (r *run) stage(ctx context.Context, st Stage, fn func() (string, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.sink.OnEvent(Event{Stage: st, Status: StatusWorking})
	span := trace.Begin(r.tracer, trace.ScopePass, string(st), r.span.ID())
	idx := r.timer.Begin(string(st))
	started := time.Now()

	detail, err := fn()

	elapsed := time.Since(started)
	if err != nil {
		r.timer.End(idx, "failed")
		span.End(err.Error())
		r.sink.OnEvent(Event{Stage: st, Status: StatusError, Err: err, Elapsed: elapsed})
		return err
	}
	r.timer.End(idx, detail)
	span.WithExtra("detail", detail).End("")
	r.sink.OnEvent(Event{Stage: st, Status: StatusDone, Detail: detail, Elapsed: elapsed})
	return nil
}

func (r *run) skip(st Stage, why string) {
	r.sink.OnEvent(Event{Stage: st, Status: StatusSkipped, Detail: why})
}

func (r *run) finish(err error) {
	r.span.WithExtra("diagnostics", strconv.Itoa(r.bag.Len()))
	if n := r.reporter.Suppressed(); n > 0 {
		r.span.WithExtra("duplicates", strconv.Itoa(n))
	}
	if err != nil {
		r.span.End(err.Error())
		return
	}
	r.span.End("")
}
