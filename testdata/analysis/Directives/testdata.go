package testdata

//newtype:derive // want `newtype:derive must annotate a type declaration`
func f() {}

//newtype:derive // want `newtype:derive must annotate a type declaration`
var v int

//newtype:unknown // want `unknown newtype directive "unknown"`

//newtype:derive
//newtype:derive // want `duplicate newtype:derive directive`
type A struct{ int }

type (
	//newtype:derive
	B struct{ int }

	C struct{ int } //newtype:derive // want `newtype:derive must annotate a type declaration`
)

func g() {
	//newtype:derive // want `newtype:derive must annotate a type declaration`
	type local struct{ int }
}
