// ABOUTME: Entry point for the officetime CLI
// ABOUTME: Delegates to the root Cobra command

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
