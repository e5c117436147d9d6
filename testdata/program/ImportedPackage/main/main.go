//go:build !newtype

package main

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/smmoosavi/the-newtype"
)

// innerOf compiles only if N implements newtype.Newtype[I].
func innerOf[N newtype.Newtype[I], I any]() reflect.Type {
	return reflect.TypeFor[I]()
}

func main() {
	fmt.Println(innerOf[Buffer, *bytes.Buffer]())
}
