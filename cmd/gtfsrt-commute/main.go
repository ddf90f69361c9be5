package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/internal"

	_ "time/tzdata"
)

func main() {
	app := &cli.App{
		Name:  "gtfsrt-commute",
		Usage: "Pick the fastest subway option to the office from MTA GTFS-Realtime feeds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config (default: config.yml, ./config/config.yml)",
				EnvVars: []string{"COMMUTE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"COMMUTE_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "human readable log output",
			},
		},
		Before: func(c *cli.Context) error {
			internal.InitLogging(c.String("log-level"), c.Bool("pretty"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "poll the feeds until interrupted",
				Action: runCommand,
			},
			{
				Name:   "once",
				Usage:  "run a single cycle and exit",
				Action: onceCommand,
			},
		},
		DefaultCommand: "run",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}
