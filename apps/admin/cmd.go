package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mwalimu/darasa/core/table"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	client table.Client
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed            - load the sample dataset into the configured boundary")
	fmt.Println("  stats           - print class statistics from the configured boundary")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)

	switch args[1] {
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed()
	case "stats":
		if err := statsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.stats()
	default:
		cli.printUsage()
		return errHelp
	}
}
