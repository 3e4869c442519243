// Command goldtix runs the ticket ledger locally. State lives in memory,
// events are recorded in a sqlite database for later inspection.
package main

import (
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
