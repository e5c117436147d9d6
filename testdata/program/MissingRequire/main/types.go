package main

//newtype:derive
type Meters struct{ float64 }
