package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"reflect"
	"strconv"

	"golang.org/x/tools/go/packages"

	"github.com/smmoosavi/the-newtype/internal/codefmt"
)

var (
	// ErrNotAStruct is reported at the type name when the annotated type is
	// not defined by a struct type.
	ErrNotAStruct = errors.New("newtype can only be derived for structs")

	// ErrNoFields is reported at the type name when the struct has no fields.
	ErrNoFields = errors.New("newtype must have exactly one field")

	// ErrTooManyFields is reported at the second field when the struct has
	// more than one field.
	ErrTooManyFields = errors.New("newtype must have exactly one field")
)

// Witness is the sole field of a newtype struct. Its type is the inner type
// of the newtype.
type Witness struct {
	// Field is the field declaration. Its tag may carry [AttrKey].
	Field *ast.Field

	// Name is the field name, or nil for an embedded field.
	Name *ast.Ident
}

// Expr returns the declared type of the field as written in the source.
// Witness implements [codefmt.Exprer] by this method.
func (w Witness) Expr() ast.Expr { return w.Field.Type }

// Attr returns the value of the [AttrKey] struct tag of the field. The value
// is accepted but not interpreted.
func (w Witness) Attr() (string, bool) {
	if w.Field.Tag == nil {
		return "", false
	}
	tag, err := strconv.Unquote(w.Field.Tag.Value)
	if err != nil {
		return "", false
	}
	return reflect.StructTag(tag).Lookup(AttrKey)
}

// Newtype is a type declaration which passed extraction.
type Newtype struct {
	Desc    TypeDesc
	Witness Witness
}

// Pkg returns the package where the newtype is declared.
func (nt Newtype) Pkg() *packages.Package { return nt.Desc.Pkg() }

// Pos returns the position of the type name.
func (nt Newtype) Pos() token.Pos { return nt.Desc.Pos() }

// slot is one declared field. Fields sharing a declaration like "a, b int"
// are separate slots of the same [ast.Field].
type slot struct {
	field *ast.Field
	name  *ast.Ident
}

// anchor is the syntax node diagnostics about the slot point at. A field
// declaring a single name or none is anchored as a whole. A name sharing its
// declaration with others is anchored alone.
func (s slot) anchor() codefmt.Poser {
	if s.name != nil && len(s.field.Names) > 1 {
		return s.name
	}
	return s.field
}

func slots(fields *ast.FieldList) []slot {
	if fields == nil {
		return nil
	}

	var ss []slot
	for _, field := range fields.List {
		if len(field.Names) == 0 {
			ss = append(ss, slot{field: field})
			continue
		}
		for _, name := range field.Names {
			ss = append(ss, slot{field: field, name: name})
		}
	}
	return ss
}

// Extract validates that the type description denotes a struct with exactly
// one field and returns that field. The description is not modified, and the
// witness refers to the field's type expression as declared.
//
// Errors wrap [ErrNotAStruct], [ErrNoFields], or [ErrTooManyFields] and are
// anchored at the offending syntax. Extra fields are reported at the second
// field, which is the first one that should not be there.
func Extract(pkger codefmt.Pkger, desc TypeDesc) (Witness, error) {
	st, ok := desc.Shape().(*ast.StructType)
	if !ok || desc.IsAlias() {
		return Witness{}, codefmt.Anchor(pkger, desc.Name(), ErrNotAStruct)
	}

	ss := slots(st.Fields)
	switch {
	case len(ss) == 0:
		return Witness{}, codefmt.Anchor(pkger, desc.Name(), ErrNoFields)
	case len(ss) > 1:
		return Witness{}, codefmt.Errorf(pkger, ss[1].anchor(), "%w, found %d", ErrTooManyFields, len(ss))
	}

	return Witness{Field: ss[0].field, Name: ss[0].name}, nil
}

// Extract extracts the witness of a type declaration in the parser's package.
func (p *Parser) Extract(desc TypeDesc) (Newtype, error) {
	w, err := Extract(p, desc)
	if err != nil {
		return Newtype{}, err
	}
	return Newtype{Desc: desc, Witness: w}, nil
}
