//go:build !newtype

package main

import (
	"fmt"
	"reflect"
	"time"

	"github.com/smmoosavi/the-newtype"
)

// innerOf compiles only if N implements newtype.Newtype[I].
func innerOf[N newtype.Newtype[I], I any]() reflect.Type {
	return reflect.TypeFor[I]()
}

func main() {
	fmt.Println(innerOf[Meters, float64]())
	fmt.Println(innerOf[UserID, uint64]())
	fmt.Println(innerOf[Timeout, time.Duration]())
	fmt.Println(innerOf[Names, []string]())

	// The method is a marker and does nothing.
	Meters{}.NewtypeInner(newtype.Of[float64]{})
}
