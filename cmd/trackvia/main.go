// Command trackvia is a thin CLI over the trackvia-go client library:
// list apps and views, read/write records, and move files in and out of
// record file fields.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
