package main

import (
	"os"

	"github.com/arossel/planboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
