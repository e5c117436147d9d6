package codefmt

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Formatter formats expressions, type parameter lists, and positions.
type Formatter struct {
	Fset *token.FileSet
}

func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.Fset}
}

func newByPkger(pkger Pkger) Formatter {
	if pkger == nil {
		return New(nil)
	}
	return New(pkger.Pkg())
}

// Expr returns a Go source code representation of the given [ast.Expr].
func (f Formatter) Expr(expr ast.Expr) string {
	var b strings.Builder
	if err := format.Node(&b, f.Fset, expr); err != nil {
		panic(err) // should never happen because ast.Expr must be supported by the go/printer
	}
	return b.String()
}

// TypeParams returns the declaration form of a type parameter list, including
// constraints. It returns an empty string for a nil or empty list.
//
// e.g., "[K comparable, V any]"
func (f Formatter) TypeParams(list *ast.FieldList) string {
	if list.NumFields() == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, field := range list.List {
		if i != 0 {
			b.WriteString(", ")
		}
		for j, name := range field.Names {
			if j != 0 {
				b.WriteString(", ")
			}
			b.WriteString(name.Name)
		}
		b.WriteByte(' ')
		b.WriteString(f.Expr(field.Type))
	}
	b.WriteByte(']')
	return b.String()
}

// TypeArgs returns the application form of a type parameter list, which is
// the parameter names only. It returns an empty string for a nil or empty
// list.
//
// e.g., "[K, V]"
func (f Formatter) TypeArgs(list *ast.FieldList) string {
	if list.NumFields() == 0 {
		return ""
	}

	var names []string
	for _, field := range list.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
