package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexInvalidUTF8              Code = 1006

	// Синтаксические
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnexpectedEOF   Code = 2002
	SynNestingTooDeep  Code = 2003

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexTokenTooLong:             "Token too long",
	LexInvalidUTF8:              "Invalid UTF-8 sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedEOF:            "Unexpected end of input",
	SynNestingTooDeep:           "Nesting too deep",
	IOLoadFileError:             "Failed to load file",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

// Class groups codes into the three error kinds callers branch on.
type Class uint8

const (
	ClassOther Class = iota
	ClassLex
	ClassUnexpectedToken
	ClassUnexpectedEOF
)

func (c Class) String() string {
	switch c {
	case ClassLex:
		return "LexError"
	case ClassUnexpectedToken:
		return "UnexpectedToken"
	case ClassUnexpectedEOF:
		return "UnexpectedEndOfInput"
	}
	return "Other"
}

func (c Code) Class() Class {
	switch {
	case c >= 1001 && c < 2000:
		return ClassLex
	case c == SynUnexpectedToken, c == SynNestingTooDeep:
		return ClassUnexpectedToken
	case c == SynUnexpectedEOF:
		return ClassUnexpectedEOF
	}
	return ClassOther
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
