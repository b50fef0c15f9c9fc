// Package format re-prints a parsed program in canonical layout and
// regenerates the token sequence a tree was built from.
//
// Назначение: команда fmt и проверка, что дерево покрывает все съеденные токены.
// Комментарии переносятся из исходника, пустые строки схлопываются до одной.
// Не делает: частичного форматирования, IO.
// Зависимости: internal/ast, internal/token, internal/lexer, internal/parser.
package format
