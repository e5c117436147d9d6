// Package emit writes the Newtype implementation of an extracted newtype.
//
// Emission never fails. All failure modes are diagnosed by extraction and
// validation before anything is written.
package emit

import (
	"go/ast"
	"strconv"

	"github.com/smmoosavi/the-newtype/internal/codefmt"
	"github.com/smmoosavi/the-newtype/internal/newtype/parse"
	"github.com/smmoosavi/the-newtype/internal/newtype/pkgref"
)

// Generics is a type parameter list split for the parts of a generated
// declaration.
type Generics struct {
	// Params declares the type parameters with their constraints, such as
	// "[K comparable, V any]".
	Params string

	// Args applies the type parameters to the type, such as "[K, V]".
	Args string

	// Where holds constraints written apart from the parameter list. Go
	// writes constraints inline, so it is always empty.
	Where string
}

// IsGeneric reports whether there is any type parameter.
func (g Generics) IsGeneric() bool { return g.Params != "" }

// SplitGenerics splits the type parameter list of a type declaration. The
// constraints are copied as written, after package qualifiers are rewritten
// for the generated file.
//
// A blank type parameter cannot be used as a type argument, so it is renamed
// to "_0", "_1", and so on by its index in the list. The field type never
// refers to a blank parameter, so the witness is not affected.
func SplitGenerics(w *codefmt.Writer, list *ast.FieldList) Generics {
	if list.NumFields() == 0 {
		return Generics{}
	}

	declared := make(map[string]bool)
	for _, field := range list.List {
		for _, name := range field.Names {
			declared[name.Name] = true
		}
	}

	rewritten := &ast.FieldList{Opening: list.Opening, Closing: list.Closing}
	index := 0
	for _, field := range list.List {
		names := make([]*ast.Ident, len(field.Names))
		for i, name := range field.Names {
			names[i] = name
			if name.Name == "_" {
				names[i] = &ast.Ident{NamePos: name.NamePos, Name: blankName(index, declared)}
			}
			index++
		}

		rewritten.List = append(rewritten.List, &ast.Field{
			Names: names,
			Type:  codefmt.RewriteImports(w, field.Type),
		})
	}

	f := w.Formatter()
	return Generics{
		Params: f.TypeParams(rewritten),
		Args:   f.TypeArgs(rewritten),
	}
}

// blankName returns a name for the blank type parameter at index which no
// other parameter declares.
func blankName(index int, declared map[string]bool) string {
	name := "_" + strconv.Itoa(index)
	for declared[name] {
		name = "_" + name
	}
	declared[name] = true
	return name
}

// Qualifier returns the prefix to refer to declarations of the Newtype
// package, importing it through the writer if needed.
func Qualifier(w *codefmt.Writer, ref pkgref.Ref) string {
	if ref.Self {
		return ""
	}
	return w.Import(ref.Path, ref.Name) + "."
}

// Reserve reserves the type parameter names of the newtype in the writer's
// namespace. It must be called for every newtype of a file before
// [Emit], so that no import is shadowed by a type parameter.
func Reserve(w *codefmt.Writer, nt parse.Newtype) {
	list := nt.Desc.TypeParams()
	if list == nil {
		return
	}
	for _, field := range list.List {
		for _, name := range field.Names {
			w.Reserve(name.Name)
		}
	}
}

// Emit writes the method implementing Newtype for nt and a compile-time
// assertion of the implementation. For a non-generic type:
//
//	// NewtypeInner marks Celsius as a newtype of float64.
//	func (Celsius) NewtypeInner(newtype.Of[float64]) {}
//
//	var _ newtype.Newtype[float64] = Celsius{}
//
// For a generic type, the assertion is a generic function declaring the type
// parameters with their constraints:
//
//	// NewtypeInner marks Ref as a newtype of *T.
//	func (Ref[T]) NewtypeInner(newtype.Of[*T]) {}
//
//	func _[T any]() { var _ newtype.Newtype[*T] = Ref[T]{} }
//
// Identical inputs produce identical output.
func Emit(w *codefmt.Writer, nt parse.Newtype, ref pkgref.Ref) {
	q := Qualifier(w, ref)
	g := SplitGenerics(w, nt.Desc.TypeParams())
	name := nt.Desc.Name().Name
	witness := codefmt.RewriteImports(w, nt.Witness.Expr())

	w.Printf("// %s marks %s as a newtype of %c.\n", parse.MethodName, name, witness)
	w.Printf("func (%s%s) %s(%sOf[%c]) {}\n\n", name, g.Args, parse.MethodName, q, witness)

	if !g.IsGeneric() {
		w.Printf("var _ %sNewtype[%c] = %s{}\n\n", q, witness, name)
		return
	}
	w.Printf("func _%s() { var _ %sNewtype[%c] = %s%s{} }\n\n", g.Params, q, witness, name, g.Args)
}
