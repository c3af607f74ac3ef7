package main

import (
	"os"

	"github.com/yeremiapane/smart-pos/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
