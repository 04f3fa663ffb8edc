package main

import (
	"os"

	"github.com/spendsight/spendsight/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
