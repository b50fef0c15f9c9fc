package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks the bytes that stopped the lexer.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwLet    // let
	KwFn     // fn
	KwIf     // if
	KwElse   // else
	KwWhile  // while
	KwReturn // return
	KwTrue   // true
	KwFalse  // false
	KwNil    // nil

	IntLit    // 42, 0x2a, 0b1010, 1_000
	FloatLit  // 1.5, .5, 1e9
	StringLit // "..."

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	AndAnd        // &&
	OrOr          // ||
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	Comma         // ,
	Semicolon     // ;
	Dot           // .
	Colon         // :

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwLet:         "KwLet",
	KwFn:          "KwFn",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwWhile:       "KwWhile",
	KwReturn:      "KwReturn",
	KwTrue:        "KwTrue",
	KwFalse:       "KwFalse",
	KwNil:         "KwNil",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	EqEq:          "EqEq",
	Bang:          "Bang",
	BangEq:        "BangEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Comma:         "Comma",
	Semicolon:     "Semicolon",
	Dot:           "Dot",
	Colon:         "Colon",
}

// fixed spelling for keywords and punctuation; empty for classes
var kindSpelling = [kindCount]string{
	KwLet:         "let",
	KwFn:          "fn",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwReturn:      "return",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNil:         "nil",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Comma:         ",",
	Semicolon:     ";",
	Dot:           ".",
	Colon:         ":",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spelling returns the fixed source text of k, or "" for identifiers,
// literals, EOF and Invalid.
func (k Kind) Spelling() string {
	if k < kindCount {
		return kindSpelling[k]
	}
	return ""
}

// Describe returns the wording used in "expected ..." diagnostics.
func (k Kind) Describe() string {
	switch k {
	case EOF:
		return "end of input"
	case Invalid:
		return "invalid token"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	}
	if s := k.Spelling(); s != "" {
		return "'" + s + "'"
	}
	return k.String()
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwLet && k <= KwNil }

// IsLiteral reports whether k is a numeric or string literal.
func (k Kind) IsLiteral() bool { return k >= IntLit && k <= StringLit }

// IsPunctOrOp reports whether k is an operator or punctuation.
func (k Kind) IsPunctOrOp() bool { return k >= Plus && k < kindCount }

// IsAssignOp reports whether k may separate an assignment target from its value.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	default:
		return false
	}
}
