package main

//newtype:derive
type (
	Celsius    struct{ float64 }
	Fahrenheit struct{ degrees float64 }
)

type (
	//newtype:derive
	Email struct{ string }

	Raw struct{ a, b string }
)
