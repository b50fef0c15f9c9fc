package lexer

import (
	"lwfront/internal/diag"
	"lwfront/internal/source"
)

// maxTokenLength caps a single token (identifier, number, string).
// Longer tokens stop the lexer with LexTokenTooLong.
const maxTokenLength = 64 * 1024

type Options struct {
	// Reporter получает первую (и единственную) лексическую ошибку. Может быть nil.
	Reporter diag.Reporter
	// MaxTokenLength overrides maxTokenLength when non-zero.
	MaxTokenLength uint32
}

func (o Options) tokenLimit() uint32 {
	if o.MaxTokenLength != 0 {
		return o.MaxTokenLength
	}
	return maxTokenLength
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
