package main

import (
	"fmt"
	"os"

	"studynotes/internal/client/cli"
	"studynotes/internal/config"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := cli.New(cfg, os.Stdout, nil).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", cli.Message(err))
		os.Exit(1)
	}
}
