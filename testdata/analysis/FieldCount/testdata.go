package testdata

//newtype:derive
type Empty struct{} // want `newtype must have exactly one field`

//newtype:derive
type Pair struct {
	a int
	b string // want `newtype must have exactly one field, found 2`
}

//newtype:derive
type Shared struct{ a, b, c int } // want `newtype must have exactly one field, found 3`

//newtype:derive
type Embedded struct {
	int
	string // want `newtype must have exactly one field, found 2`
}

// ok
//
//newtype:derive
type Single struct{ int }

type NotDerived struct{ a, b int }
