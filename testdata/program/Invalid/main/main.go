//go:build !newtype

package main

func main() {}
