package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "rentreceipt",
		Usage: "Generate, store and list rent receipts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-prefix",
				Aliases: []string{"p"},
				Usage:   "Environment variable prefix, unprefixed names are used as a fallback",
				EnvVars: []string{"RENTRECEIPT_ENV_PREFIX"},
			},
		},
		Before: func(c *cli.Context) error {
			logrus.SetFormatter(&logrus.JSONFormatter{})
			return nil
		},
		Commands: []*cli.Command{
			serveCommand,
			renderCommand,
			seedCommand,
			tokenCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
