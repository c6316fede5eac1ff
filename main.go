package main

import (
	"os"

	"github.com/camellia0204/notice-tray/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
