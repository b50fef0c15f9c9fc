// Package diagfmt renders diagnostics, token streams and syntax trees for
// humans (pretty, with optional color) and for tools (JSON, SARIF).
//
// Назначение: единая точка вывода для CLI.
// Не делает: сбор диагностик, сортировку (ожидается bag.Sort() заранее).
// Зависимости: internal/diag, internal/source, internal/ast, internal/token.
package diagfmt
