package main

import "time"

//newtype:derive
type Meters struct{ float64 }

//newtype:derive
type UserID struct {
	value uint64 `newtype:"ignored"`
}

//newtype:derive
type Timeout struct{ time.Duration }

//newtype:derive
type Names struct{ list []string }
