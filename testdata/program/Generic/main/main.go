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
	fmt.Println(innerOf[Wrapper[int], int]())
	fmt.Println(innerOf[Ref[string], *string]())
	fmt.Println(innerOf[Pair[string, bool], map[string]bool]())
	fmt.Println(innerOf[Sum[float64], float64]())
}
