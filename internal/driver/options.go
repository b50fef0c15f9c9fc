package driver

import (
	"lwfront/internal/lexer"
)

// Options configure one driver call. The zero value is usable.
type Options struct {
	// MaxDiagnostics bounds every Bag the driver creates; <=0 means diag default.
	MaxDiagnostics int
	// Jobs limits directory workers; <=0 means GOMAXPROCS.
	Jobs int
	// Timings enables phase timings (ParseResult.Timings).
	Timings bool
	// MaxTokenLength is forwarded to the lexer.
	MaxTokenLength uint32
	// Sink receives progress events of directory runs. May be nil.
	Sink ProgressSink
	// Cache short-circuits directory checks of unchanged files. May be nil.
	Cache *DiskCache
}

func (o Options) lexerOptions() lexer.Options {
	return lexer.Options{MaxTokenLength: o.MaxTokenLength}
}

func (o Options) emit(ev Event) {
	if o.Sink != nil {
		o.Sink.OnEvent(ev)
	}
}
