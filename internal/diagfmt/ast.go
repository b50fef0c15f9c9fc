package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lwfront/internal/ast"
	"lwfront/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTPretty печатает дерево с псевдографикой, по узлу на строку.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}

	header := "File"
	if fs != nil {
		header = formatPath(fs, fs.Get(file.Span.File), PathModeAuto)
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(file.Span, fs))
	writeChildren(w, builder, ast.NodeRef{File: fileID}, fs, "")
	return nil
}

func writeChildren(w io.Writer, builder *ast.Builder, n ast.NodeRef, fs *source.FileSet, prefix string) {
	kids := builder.Children(n)
	for i, c := range kids {
		branch, next := "├─ ", "│  "
		if i == len(kids)-1 {
			branch, next = "└─ ", "   "
		}
		kind, text := nodeLabel(builder, c)
		label := kind
		if text != "" {
			label += " " + text
		}
		fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, label, formatSpan(builder.Span(c), fs))
		writeChildren(w, builder, c, fs, prefix+next)
	}
}

// FormatASTJSON сериализует дерево рекурсивно, поля узла кладутся в Fields.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	if builder.Files.Get(fileID) == nil {
		return fmt.Errorf("file not found")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildNodeJSON(builder, ast.NodeRef{File: fileID}))
}

func buildNodeJSON(builder *ast.Builder, n ast.NodeRef) ASTNodeOutput {
	out := ASTNodeOutput{Span: builder.Span(n)}
	switch {
	case n.IsFile():
		out.Type = "File"
	case n.IsStmt():
		out.Type = "Stmt"
		out.Fields = stmtFields(builder, n.Stmt)
	default:
		out.Type = "Expr"
		out.Fields = exprFields(builder, n.Expr)
	}
	if !n.IsFile() {
		out.Kind, out.Text = nodeLabel(builder, n)
	}
	for _, c := range builder.Children(n) {
		out.Children = append(out.Children, buildNodeJSON(builder, c))
	}
	return out
}

// nodeLabel returns the node kind and a short text for it.
func nodeLabel(b *ast.Builder, n ast.NodeRef) (kind, text string) {
	if n.IsStmt() {
		st := b.Stmts.Get(n.Stmt)
		if st == nil {
			return "Stmt", "<nil>"
		}
		switch st.Kind {
		case ast.StmtLet:
			return st.Kind.String(), b.Name(b.Stmts.Let(n.Stmt).Name)
		case ast.StmtAssign:
			return st.Kind.String(), b.Stmts.Assign(n.Stmt).Op.String()
		case ast.StmtFn:
			fn := b.Stmts.Fn(n.Stmt)
			params := make([]string, 0, len(fn.Params))
			for _, p := range fn.Params {
				params = append(params, b.Name(p.Name))
			}
			return st.Kind.String(), b.Name(fn.Name) + "(" + strings.Join(params, ", ") + ")"
		case ast.StmtReturn:
			if !b.Stmts.Return(n.Stmt).Value.IsValid() {
				return st.Kind.String(), "<none>"
			}
		}
		return st.Kind.String(), ""
	}

	ex := b.Exprs.Get(n.Expr)
	if ex == nil {
		return "Expr", "<nil>"
	}
	switch ex.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(n.Expr)
		return ex.Kind.String(), b.Name(d.Name)
	case ast.ExprLit:
		d, _ := b.Exprs.Literal(n.Expr)
		return ex.Kind.String(), d.Kind.String() + " " + b.Name(d.Value)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(n.Expr)
		return ex.Kind.String(), d.Op.String()
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(n.Expr)
		return ex.Kind.String(), d.Op.String()
	case ast.ExprMember:
		d, _ := b.Exprs.Member(n.Expr)
		return ex.Kind.String(), "." + b.Name(d.Field)
	}
	return ex.Kind.String(), ""
}

func stmtFields(b *ast.Builder, id ast.StmtID) map[string]any {
	st := b.Stmts.Get(id)
	fields := map[string]any{}
	if st.Semi {
		fields["semicolon"] = true
	}
	switch st.Kind {
	case ast.StmtLet:
		fields["name"] = b.Name(b.Stmts.Let(id).Name)
	case ast.StmtAssign:
		fields["op"] = b.Stmts.Assign(id).Op.String()
	case ast.StmtFn:
		fn := b.Stmts.Fn(id)
		params := make([]string, 0, len(fn.Params))
		for _, p := range fn.Params {
			params = append(params, b.Name(p.Name))
		}
		fields["name"] = b.Name(fn.Name)
		fields["params"] = params
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func exprFields(b *ast.Builder, id ast.ExprID) map[string]any {
	ex := b.Exprs.Get(id)
	switch ex.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return map[string]any{"name": b.Name(d.Name)}
	case ast.ExprLit:
		d, _ := b.Exprs.Literal(id)
		return map[string]any{"lit": d.Kind.String(), "value": b.Name(d.Value)}
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return map[string]any{"op": d.Op.String()}
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return map[string]any{"op": d.Op.String()}
	case ast.ExprMember:
		d, _ := b.Exprs.Member(id)
		return map[string]any{"field": b.Name(d.Field)}
	}
	return nil
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("%d-%d", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
