package lexer

import (
	"lwfront/internal/token"
)

// Stream is the parser's view of the token sequence: unbounded lookahead
// over a Lexer with a cursor that only moves forward.
type Stream struct {
	lx       *Lexer
	buf      []token.Token // уже прочитанные, но не потреблённые токены
	consumed int
	end      *token.Token // EOF или Invalid, после которого лексер не опрашивается
}

func NewStream(lx *Lexer) *Stream {
	return &Stream{lx: lx}
}

// Lexer returns the underlying lexer.
func (s *Stream) Lexer() *Lexer { return s.lx }

func (s *Stream) fill(n int) {
	for len(s.buf) < n {
		if s.end != nil {
			s.buf = append(s.buf, s.terminal())
			continue
		}
		tok := s.lx.Next()
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			end := tok
			s.end = &end
		}
		s.buf = append(s.buf, tok)
	}
}

// terminal is what the stream yields past its last token: EOF at end of input.
func (s *Stream) terminal() token.Token {
	return token.Token{Kind: token.EOF, Span: s.lx.file.EOFSpan()}
}

// Peek returns the next unconsumed token.
func (s *Stream) Peek() token.Token {
	return s.PeekN(0)
}

// PeekN returns the k-th unconsumed token (0-based). Past the end it
// returns EOF.
func (s *Stream) PeekN(k int) token.Token {
	if k < 0 {
		k = 0
	}
	s.fill(k + 1)
	return s.buf[k]
}

// Next consumes and returns one token.
func (s *Stream) Next() token.Token {
	tok := s.Peek()
	s.buf[0] = token.Token{}
	s.buf = s.buf[1:]
	s.consumed++
	return tok
}

// Consumed returns how many tokens have been taken with Next.
func (s *Stream) Consumed() int {
	return s.consumed
}

// Drain consumes everything up to and including the terminal token.
func (s *Stream) Drain() []token.Token {
	var out []token.Token
	for {
		tok := s.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			return out
		}
	}
}
