// Command catalogue browses the dataset catalogue from a terminal.
// Usage: catalogue search [options]
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
