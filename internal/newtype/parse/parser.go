package parse

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/smmoosavi/the-newtype/internal/newtype/pkgref"
)

// AttrKey is the struct tag key reserved for per-field configuration. Fields
// may carry it, but it is not interpreted yet.
const AttrKey = "newtype"

// MethodName is the name of the method generated for every newtype.
const MethodName = "NewtypeInner"

// Directive prefix and names. A directive is a line comment without a space
// after the slashes, like "//go:generate".
const (
	directivePrefix = "//newtype:"
	DirectiveDerive = "derive"
)

// Parser parses an AST of the underlying package to collect types annotated
// with newtype directives.
type Parser struct{ pkg *packages.Package }

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg}, nil
}

// TypeOf returns the defined type declared by the type spec. It returns nil
// for aliases and for specs without type information.
func (p *Parser) TypeOf(spec *ast.TypeSpec) *types.Named {
	obj, ok := p.pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
	if !ok || obj.IsAlias() {
		return nil
	}
	named, _ := obj.Type().(*types.Named)
	return named
}

// FileOf returns the syntax file containing pos.
func (p *Parser) FileOf(pos token.Pos) *ast.File {
	for _, file := range p.pkg.Syntax {
		if file.FileStart <= pos && pos <= file.FileEnd {
			return file
		}
	}
	return nil
}

// IsGeneratedByNewtype reports whether the file was written by this
// generator.
func IsGeneratedByNewtype(file *ast.File) bool {
	if !ast.IsGenerated(file) {
		return false
	}
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, comment := range group.List {
			if strings.HasPrefix(comment.Text, "// Code generated by "+pkgref.ImportPath) {
				return true
			}
		}
	}
	return false
}

// parseDirective splits a newtype directive comment into its name. It returns
// false if the comment is not a newtype directive.
//
//	//newtype:derive
//	          ^^^^^^
func parseDirective(comment *ast.Comment) (string, bool) {
	text, ok := strings.CutPrefix(comment.Text, directivePrefix)
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(text, " ")
	return strings.TrimSpace(name), true
}
