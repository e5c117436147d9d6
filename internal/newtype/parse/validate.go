package parse

import (
	"errors"
	"go/ast"

	"github.com/smmoosavi/the-newtype/internal/codefmt"
)

// ErrMethodExists is reported when the generated method would collide with a
// method or field the user already declared.
var ErrMethodExists = errors.New("NewtypeInner already declared")

// Validate checks extracted newtypes for collisions the generated code would
// not compile with. It collects all errors instead of stopping at the first
// error.
//
// Methods declared by a previously generated file are ignored, because that
// file is replaced at code generation.
func (p *Parser) Validate(nts []Newtype) error {
	var errs error
	for _, nt := range nts {
		errs = errors.Join(errs, p.validateMethod(nt))
		errs = errors.Join(errs, p.validateFieldName(nt))
	}
	return errs
}

// validateMethod checks that the type does not declare NewtypeInner by hand.
func (p *Parser) validateMethod(nt Newtype) error {
	named := p.TypeOf(nt.Desc.Spec)
	if named == nil {
		return nil
	}

	for i := range named.NumMethods() {
		m := named.Method(i)
		if m.Name() != MethodName {
			continue
		}

		if file := p.FileOf(m.Pos()); file != nil && IsGeneratedByNewtype(file) {
			continue
		}

		return codefmt.Errorf(p, nt.Desc.Name(), "%w as method of %s at %b", ErrMethodExists, nt.Desc.Name().Name, m.Pos())
	}
	return nil
}

// validateFieldName checks that the sole field is not named NewtypeInner. A
// field and a method cannot share a name.
//
//	type T struct{ NewtypeInner int }
//	               ^^^^^^^^^^^^
//	type T struct{ pkg.NewtypeInner }
//	                   ^^^^^^^^^^^^
func (p *Parser) validateFieldName(nt Newtype) error {
	name := nt.Witness.Name
	if name == nil {
		name = embeddedName(nt.Witness.Expr())
	}
	if name == nil || name.Name != MethodName {
		return nil
	}

	return codefmt.Errorf(p, name, "%w as field of %s", ErrMethodExists, nt.Desc.Name().Name)
}

// embeddedName returns the identifier an embedded field is named after.
func embeddedName(expr ast.Expr) *ast.Ident {
	switch expr := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return expr
	case *ast.SelectorExpr:
		return expr.Sel
	case *ast.StarExpr:
		return embeddedName(expr.X)
	case *ast.IndexExpr:
		return embeddedName(expr.X)
	case *ast.IndexListExpr:
		return embeddedName(expr.X)
	}
	return nil
}
