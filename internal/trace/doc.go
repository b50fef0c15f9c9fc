// Package trace is the structured event log of the front end.
//
// Driver code opens spans around phases (load, lex, parse, format) and
// per-file work; the tracer decides by level which of them reach the
// output. Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Implementations: Nop (tracing off), StreamTracer (write at once),
// RingTracer (last N events kept for a dump on failure) and MultiTracer.
//
// Levels: off, error (ring only, dumped on failure), phase (driver and
// pass boundaries), detail (per file), debug (everything).
package trace
