// Package newtype exposes the type wrapped by a single-field struct.
//
// A newtype is a struct with exactly one field, used to give an existing type
// a distinct identity:
//
//	type UserID struct{ int64 }
//	type Celsius struct{ value float64 }
//
// Annotate the type with a newtype directive and run the newtype command. The
// generator validates that the struct has exactly one field and implements
// [Newtype] for it, naming the field's declared type as the inner type:
//
//	// source:
//	//newtype:derive
//	type UserID struct{ int64 }
//
//	// generated: newtype_gen.go
//	func (UserID) NewtypeInner(newtype.Of[int64]) {}
//
// The command writes newtype_gen.go for each package:
//
//	go run github.com/smmoosavi/the-newtype/cmd/newtype ./...
//
// # Generics
//
// Type parameters of the wrapper are passed through unchanged, and the inner
// type is copied verbatim from the field declaration:
//
//	//newtype:derive
//	type Ref[T any] struct{ ptr *T }
//
//	// generated:
//	func (Ref[T]) NewtypeInner(newtype.Of[*T]) {}
//
// # Diagnostics
//
// Only structs with exactly one field can be derived. Other shapes are
// reported at the type name, and extra fields at the second field:
//
//	main.go:12:2: newtype must have exactly one field, found 3
//
// The same diagnostics are available as a go/analysis analyzer in
// [github.com/smmoosavi/the-newtype/pkg/newtypeanalysis].
package newtype

// Newtype is implemented by single-field wrapper types. Inner is the declared
// type of the wrapped field.
//
// Implementations are generated. The method exists only to carry Inner at the
// type level and is never called.
type Newtype[Inner any] interface {
	NewtypeInner(Of[Inner])
}

// Of is a zero-size witness of type T.
type Of[T any] struct{}
