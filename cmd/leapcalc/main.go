// Package main provides the LeapCalc command line interface.
package main

import (
	"github.com/leapstack-labs/leapcalc/internal/cli"
)

func main() {
	cli.Main()
}
