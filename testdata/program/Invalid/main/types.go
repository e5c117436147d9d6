package main

//newtype:derive
type Empty struct{}

//newtype:derive
type Pair struct {
	a int
	b string
}

//newtype:derive
type Celsius float64
