package main

import (
	"os"

	"github.com/kndndrj/dbquery/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
