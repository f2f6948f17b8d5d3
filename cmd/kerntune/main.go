// Package main provides the entry point for the kerntune sysctl generator CLI.
package main

import (
	"os"

	"github.com/jamesainslie/kerntune/pkg/kerntune/logging"
)

func main() {
	err := Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}
