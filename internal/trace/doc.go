// Package trace records what the table emitter is doing.
//
// Tracing is enabled from the command line:
//
//	racc tables --trace=- --trace-level=detail grammar.toml
//
// Tracers:
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes every event as text or NDJSON
//   - RingTracer: keeps the last N events, dumped when emission fails
//   - MultiTracer: stream and ring together
//
// Levels select scopes: phase shows the driver and the builder passes,
// detail and debug add one span per packed row or goto column.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "packed-action", parent)
//	defer span.End("")
package trace
