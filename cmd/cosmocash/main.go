package main

import (
	"os"

	"github.com/mmynk/cosmocash/cmd/cosmocash/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
