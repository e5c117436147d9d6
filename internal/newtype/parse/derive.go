package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"iter"

	"golang.org/x/tools/go/packages"

	"github.com/smmoosavi/the-newtype/internal/codefmt"
)

var (
	// ErrUnknownDirective is reported for "//newtype:xxx" comments with an
	// unsupported name.
	ErrUnknownDirective = errors.New("unknown newtype directive")

	// ErrMisplacedDirective is reported for derive directives which do not
	// annotate a type declaration.
	ErrMisplacedDirective = errors.New("newtype:derive must annotate a type declaration")

	// ErrDuplicateDirective is reported when a type is annotated more than
	// once.
	ErrDuplicateDirective = errors.New("duplicate newtype:derive directive")
)

// TypeDesc describes a type declaration annotated with "//newtype:derive". It
// is the input of [Extract].
type TypeDesc struct {
	// Spec is the annotated type declaration.
	Spec *ast.TypeSpec

	// Directive is the derive directive comment.
	Directive *ast.Comment

	pkg *packages.Package
}

// NewTypeDesc creates a [TypeDesc] for the type spec in the package. Only
// pkg.Fset is required by [Extract].
func NewTypeDesc(pkg *packages.Package, spec *ast.TypeSpec, directive *ast.Comment) TypeDesc {
	return TypeDesc{Spec: spec, Directive: directive, pkg: pkg}
}

// Pkg returns the package where the type is declared. TypeDesc implements
// [codefmt.Pkger] by this method.
func (d TypeDesc) Pkg() *packages.Package { return d.pkg }

// Pos returns the position of the type name. TypeDesc implements
// [codefmt.Poser] by this method.
func (d TypeDesc) Pos() token.Pos { return d.Spec.Name.Pos() }

// Name returns the identifier of the type.
func (d TypeDesc) Name() *ast.Ident { return d.Spec.Name }

// TypeParams returns the type parameter list of the type. It is nil for
// non-generic types.
func (d TypeDesc) TypeParams() *ast.FieldList { return d.Spec.TypeParams }

// Shape returns the type expression the type is defined by.
func (d TypeDesc) Shape() ast.Expr { return d.Spec.Type }

// IsAlias reports whether the declaration is an alias, like "type A = B".
func (d TypeDesc) IsAlias() bool { return d.Spec.Assign.IsValid() }

// ParseDerives finds all type declarations annotated with "//newtype:derive"
// in the package, in source order. It also reports directives that are
// unknown, misplaced, or duplicated.
func (p *Parser) ParseDerives() ([]TypeDesc, error) {
	var descs []TypeDesc
	var errs error

	for _, file := range p.pkg.Syntax {
		used := make(map[*ast.Comment]bool)

		for spec, directives := range p.FindDerives(file) {
			for i, directive := range directives {
				used[directive] = true
				if i != 0 {
					err := codefmt.Anchor(p, directive, ErrDuplicateDirective)
					errs = errors.Join(errs, err)
				}
			}
			descs = append(descs, NewTypeDesc(p.pkg, spec, directives[0]))
		}

		for _, group := range file.Comments {
			for _, comment := range group.List {
				name, ok := parseDirective(comment)
				if !ok || used[comment] {
					continue
				}

				if name != DirectiveDerive {
					err := codefmt.Errorf(p, comment, "%w %q", ErrUnknownDirective, name)
					errs = errors.Join(errs, err)
					continue
				}

				err := codefmt.Anchor(p, comment, ErrMisplacedDirective)
				errs = errors.Join(errs, err)
			}
		}
	}

	return descs, errs
}

// FindDerives iterates type specs annotated with derive directives and the
// directives annotating them. A directive in the doc comment of a
// parenthesized type declaration annotates every spec in the group.
//
//	//newtype:derive
//	type A struct{ int }
//
//	type (
//		//newtype:derive
//		B struct{ int }
//		C struct{ a, b int } // not annotated
//	)
func (p *Parser) FindDerives(file *ast.File) iter.Seq2[*ast.TypeSpec, []*ast.Comment] {
	return func(yield func(*ast.TypeSpec, []*ast.Comment) bool) {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			groupDirectives := findDirectives(gen.Doc, DirectiveDerive)

			for _, spec := range gen.Specs {
				spec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				directives := append(groupDirectives[:len(groupDirectives):len(groupDirectives)],
					findDirectives(spec.Doc, DirectiveDerive)...)
				if len(directives) == 0 {
					continue
				}

				if !yield(spec, directives) {
					return
				}
			}
		}
	}
}

// findDirectives returns the directive comments with the given name in the
// comment group.
func findDirectives(group *ast.CommentGroup, name string) []*ast.Comment {
	if group == nil {
		return nil
	}

	var found []*ast.Comment
	for _, comment := range group.List {
		if n, ok := parseDirective(comment); ok && n == name {
			found = append(found, comment)
		}
	}
	return found
}
