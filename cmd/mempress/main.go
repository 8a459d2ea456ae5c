package main

import (
	"os"

	"github.com/agentmem/mempress/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
