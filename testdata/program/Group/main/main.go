//go:build !newtype

package main

import (
	"fmt"
	"reflect"

	"github.com/smmoosavi/the-newtype"
)

// innerOf compiles only if N implements newtype.Newtype[I].
func innerOf[N newtype.Newtype[I], I any]() reflect.Type {
	return reflect.TypeFor[I]()
}

func main() {
	fmt.Println(innerOf[Celsius, float64]())
	fmt.Println(innerOf[Fahrenheit, float64]())
	fmt.Println(innerOf[Email, string]())

	_, ok := any(Raw{}).(interface{ NewtypeInner(newtype.Of[string]) })
	fmt.Println(ok)
}
