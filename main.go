package main

import (
	"os"

	"github.com/sengokuquiz/sengoku/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
