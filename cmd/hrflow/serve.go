package main

import (
	"context"

	"github.com/dukex/hrflow/pkg/cmd"
	"github.com/dukex/hrflow/pkg/log"
	"github.com/dukex/hrflow/pkg/services"
	cli "github.com/urfave/cli/v3"
)

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"run"},
		Usage:   "Start the designer API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			catalogFlag(),
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider for graph change events",
				Value:   "memory",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("HRFLOW_TRACING"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing hrflow designer")

			tracer, shutdown, err := cmd.NewTracer(ctx, logger, command.Bool("tracing"), "hrflow")
			if err != nil {
				return err
			}
			defer shutdown()

			automations, err := cmd.NewCatalog(logger, command.String("catalog"))
			if err != nil {
				return err
			}

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			if err := cmd.LogGraphChanges(ctx, eventBus, log.WithModule("events")); err != nil {
				return err
			}

			session := services.NewSession(
				log.WithModule("session"),
				automations,
				services.WithTracer(tracer),
				services.WithPublisher(eventBus),
			)

			return NewAPI(logger, session).Start(command.Int("port"))
		},
	}
}
