// Package main is the entry point for the dealsense server.
package main

import (
	"os"

	"github.com/donaldgifford/dealsense/cmd/dealsense/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
