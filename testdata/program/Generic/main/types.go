package main

//newtype:derive
type Wrapper[T any] struct{ inner T }

//newtype:derive
type Ref[T any] struct{ ref *T }

//newtype:derive
type Pair[K comparable, V any] struct{ m map[K]V }

type Number interface{ ~int | ~float64 }

//newtype:derive
type Sum[N Number] struct{ total N }
