
// Package fuzztests houses Go fuzz harnesses for the lexer and parser. Its
// goal is to guard against panics and hangs on arbitrary inputs, and to check
// that every parse ends in exactly one of a tree or a single diagnostic.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер/парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/testkit, internal/format.

package fuzztests
