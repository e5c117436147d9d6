package main

import (
	"bytes"

	nt "github.com/smmoosavi/the-newtype"
)

// Witnesses can be spelled out by hand, which makes the package import the
// Newtype package before generation.
var _ nt.Of[int]

//newtype:derive
type Buffer struct{ *bytes.Buffer }
