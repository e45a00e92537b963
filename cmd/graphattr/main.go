// Command graphattr parses temporal values, evaluates operations,
// computes histograms over graph files and manages attribute snapshots.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
