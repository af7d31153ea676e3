package main

import (
	"os"

	"github.com/EiSiMo/agentic-letters-skill/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
