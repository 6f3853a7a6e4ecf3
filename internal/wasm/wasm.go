// Package main parses and formats a date in order to test WASM compilation.
package main

import (
	"fmt"

	"github.com/theory/datefmt"
)

func main() {
	// Compile a layout.
	layout := datefmt.MustCompile("yyyy-MM-dd HH:mm:ss")

	// Parse a date and render it back.
	res := layout.Parse("2013-09-13 14:23:15")

	//nolint:forbidigo
	fmt.Printf("%v %v\n", res.Unix(), layout.FormatUnix(res.Unix()))
}
