package main

import (
	"os"

	"github.com/greysolve/outreach-console/cmd/outreachctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
