package testdata

import "time"

//newtype:derive
type Timeout struct{ time.Duration }

//newtype:derive
type Ref[T any] struct{ ref *T }
