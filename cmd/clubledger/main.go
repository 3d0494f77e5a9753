package main

import (
	"os"

	"github.com/SscSPs/club_ledger_app/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
