// Command rampart plays a UI layout in a window or drives it headless from a
// lifecycle script.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
