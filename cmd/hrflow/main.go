// Package main provides the hrflow command line: offline validation and simulation of
// exported workflow graphs, and the HTTP designer server.
package main

import (
	"context"
	"os"

	"github.com/dukex/hrflow/pkg/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.WithModule("cli").Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:                  "hrflow",
		Usage:                 "Design, validate and simulate HR workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			log.SetupWriter(command.Root().ErrWriter, command.String("log-level"))

			return ctx, nil
		},
		Commands: []*cli.Command{
			ValidateCommand(),
			SimulateCommand(),
			CatalogCommand(),
			ServeCommand(),
		},
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML automation catalog (built-in catalog when empty)",
		Sources: cli.EnvVars("HRFLOW_CATALOG"),
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the result as JSON",
	}
}
