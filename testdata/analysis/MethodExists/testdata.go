package testdata

//newtype:derive
type A struct{ int } // want `NewtypeInner already declared as method of A at .*testdata.go:6:10`

func (A) NewtypeInner() {}

//newtype:derive
type B struct{ NewtypeInner int } // want `NewtypeInner already declared as field of B`

type NewtypeInner struct{}

//newtype:derive
type C struct{ *NewtypeInner } // want `NewtypeInner already declared as field of C`
