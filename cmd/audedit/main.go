// Package main is the entry point for the audedit CLI.
//
// Usage:
//
//	audedit <command> [flags] [args]
//
// Commands:
//
//	remove    - Cut time ranges out of a recording
//	mute      - Silence time ranges without changing the length
//	split     - Cut a recording into parts at timestamps
//	stitch    - Concatenate recordings into one file
//	duration  - Report total or projected durations
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
