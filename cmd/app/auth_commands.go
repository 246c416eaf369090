package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/casting/cmd/app/commands"
	"github.com/allisson/casting/internal/app"
	"github.com/allisson/casting/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "verify-token",
			Usage: "Verify a bearer token against the configured identity provider",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Encoded JWT, without the Bearer prefix",
				},
				&cli.StringFlag{
					Name:     "permission",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Permission the token must grant (e.g., get:movies)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authorizer, err := container.Authorizer()
				if err != nil {
					return err
				}

				return commands.RunVerifyToken(
					ctx,
					authorizer,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("permission"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "fetch-keys",
			Usage: "Fetch the identity provider signing keys and list their key ids",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keySet, err := container.KeySet()
				if err != nil {
					return err
				}

				return commands.RunFetchKeys(
					ctx,
					keySet,
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.AuthJWKSURL,
					cmd.String("format"),
				)
			},
		},
	}
}
