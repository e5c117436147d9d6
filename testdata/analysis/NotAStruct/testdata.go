package testdata

//newtype:derive
type Celsius float64 // want `newtype can only be derived for structs`

//newtype:derive
type Handler func() // want `newtype can only be derived for structs`

//newtype:derive
type Alias = struct{ int } // want `newtype can only be derived for structs`

type Kelvin struct{ float64 }

//newtype:derive
type Defined Kelvin // want `newtype can only be derived for structs`
