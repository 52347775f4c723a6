package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"ballotbox/internal/app/bootstrap"

	"github.com/urfave/cli/v3"
)

// Process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (store + use cases + console view).
// 3) Read commands until quit or end of input.
func main() {
	cmd := &cli.Command{
		Name:  "ballotbox",
		Usage: "Record candidates, voters and votes",
		Commands: []*cli.Command{
			sessionCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ballotbox: %v\n", err)
		os.Exit(1)
	}
}

func sessionCommand() *cli.Command {
	var opts bootstrap.SessionOptions
	var script string
	var verbose bool

	return &cli.Command{
		Name:  "session",
		Usage: "Run an election session reading commands from stdin or a script",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Optional YAML config file",
				Destination: &opts.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "script",
				Aliases:     []string{"s"},
				Usage:       "Read commands from this file instead of stdin",
				Destination: &script,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print responses as JSON lines",
				Destination: &opts.JSON,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "Do not ask for confirmation before a reset",
				Destination: &opts.AssumeYes,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Write logs to stderr",
				Destination: &verbose,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			opts.In = os.Stdin
			opts.Out = os.Stdout
			opts.Prompt = "> "
			if script != "" {
				file, err := os.Open(script)
				if err != nil {
					return err
				}
				defer file.Close()
				opts.In = file
				opts.Prompt = ""
			}
			opts.LogOut = io.Discard
			if verbose {
				opts.LogOut = os.Stderr
			}

			app, err := bootstrap.BuildSession(opts)
			if err != nil {
				return err
			}
			return app.Run(ctx)
		},
	}
}
