// Command dcmatrix computes distance covariance and correlation matrices
// for CSV data.
//
// Usage:
//
//	dcmatrix -x data.csv [-y other.csv] [--test gamma] [--adjustp holm] [-o out.csv]
//	dcmatrix --config run.yaml
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
