package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dukex/hrflow/pkg/cmd"
	"github.com/dukex/hrflow/pkg/designer"
	"github.com/dukex/hrflow/pkg/log"
	"github.com/dukex/hrflow/pkg/models"
	"github.com/dukex/hrflow/pkg/simulation"
	"github.com/dukex/hrflow/pkg/validation"
	cli "github.com/urfave/cli/v3"
)

var errMissingFile = errors.New("missing graph file argument")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Check an exported graph for structural problems",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{catalogFlag(), jsonFlag()},
		Action: func(ctx context.Context, command *cli.Command) error {
			logger := log.WithModule("validate")

			graph, err := loadGraph(command)
			if err != nil {
				return err
			}

			automations, err := cmd.NewCatalog(logger, command.String("catalog"))
			if err != nil {
				return err
			}

			actions, err := automations.ListAutomations(ctx)
			if err != nil {
				return fmt.Errorf("failed to list automations: %w", err)
			}

			result := validation.New(validation.WithCatalog(actions)).Validate(graph)

			out := command.Root().Writer
			if command.Bool("json") {
				err = writeJSON(out, result)
			} else {
				err = writeValidation(out, result)
			}

			if err != nil {
				return err
			}

			if !result.IsValid {
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

func SimulateCommand() *cli.Command {
	return &cli.Command{
		Name:      "simulate",
		Aliases:   []string{"s"},
		Usage:     "Dry-run an exported graph and print the execution trace",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed for approval rejections (time-seeded when unset)",
			},
			jsonFlag(),
		},
		Action: func(_ context.Context, command *cli.Command) error {
			graph, err := loadGraph(command)
			if err != nil {
				return err
			}

			simulator := simulation.New()
			if command.IsSet("seed") {
				simulator = simulation.NewSeeded(command.Uint64("seed"))
			}

			result := simulator.Simulate(graph)

			out := command.Root().Writer
			if command.Bool("json") {
				return writeJSON(out, result)
			}

			return writeSimulation(out, result)
		},
	}
}

func CatalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List the automation actions available to automated nodes",
		Flags: []cli.Flag{catalogFlag(), jsonFlag()},
		Action: func(ctx context.Context, command *cli.Command) error {
			automations, err := cmd.NewCatalog(log.WithModule("catalog"), command.String("catalog"))
			if err != nil {
				return err
			}

			actions, err := automations.ListAutomations(ctx)
			if err != nil {
				return fmt.Errorf("failed to list automations: %w", err)
			}

			out := command.Root().Writer
			if command.Bool("json") {
				return writeJSON(out, actions)
			}

			for _, a := range actions {
				if _, err := fmt.Fprintf(out, "%-18s %-26s %v\n", a.ID, a.Label, a.Params); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func loadGraph(command *cli.Command) (models.Graph, error) {
	path := command.Args().First()
	if path == "" {
		return models.Graph{}, errMissingFile
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return models.Graph{}, fmt.Errorf("failed to read graph file: %w", err)
	}

	store := designer.New(designer.WithLogger(log.WithModule("designer")))
	if err := store.Import(string(b)); err != nil {
		return models.Graph{}, fmt.Errorf("failed to import %s: %w", path, err)
	}

	return store.Graph(), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func writeValidation(w io.Writer, r models.ValidationResult) error {
	if r.IsValid {
		if _, err := fmt.Fprintln(w, "Workflow is valid"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Workflow is invalid"); err != nil {
			return err
		}
	}

	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "error: %s\n", e); err != nil {
			return err
		}
	}

	for _, warn := range r.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn); err != nil {
			return err
		}
	}

	return nil
}

func writeSimulation(w io.Writer, r models.SimulationResult) error {
	for i, s := range r.Steps {
		_, err := fmt.Fprintf(w, "%d. [%s] %s (%s): %s\n", i+1, s.Status, s.NodeTitle, s.NodeType, s.Message)
		if err != nil {
			return err
		}
	}

	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "error: %s\n", e); err != nil {
			return err
		}
	}

	status := "succeeded"
	if !r.Success {
		status = "failed"
	}

	_, err := fmt.Fprintf(w, "Simulation %s with %d step(s)\n", status, len(r.Steps))

	return err
}
