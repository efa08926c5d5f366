package main

import (
	"log"
	"os"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/table"
	"github.com/mwalimu/darasa/storage/table/fixture"
	"github.com/mwalimu/darasa/storage/table/live"
	"github.com/mwalimu/darasa/storage/table/postgres"
)

var logger *log.Logger // todo: logger service

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up the table boundary
	client, closeFn, err := openBoundary(conf)
	errAndDie(err)
	if closeFn != nil {
		defer closeFn()
	}

	// start CLI
	cli := commandLine{client: client}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func openBoundary(conf *core.Config) (table.Client, func(), error) {
	switch conf.Boundary.Kind {
	case "live":
		return live.NewClient(conf), nil, nil
	case "postgres":
		client, err := postgres.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	default:
		client, err := fixture.Open()
		return client, nil, err
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
