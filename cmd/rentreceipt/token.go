package main

import (
	"fmt"
	"time"

	"rentreceipt/internal/auth"
	"rentreceipt/pkg/types"

	"github.com/urfave/cli/v2"
)

var tokenCommand = &cli.Command{
	Name:  "token",
	Usage: "Issue an HS256 bearer token signed with JWT_SECRET for local testing",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:     "user",
			Aliases:  []string{"u"},
			Usage:    "User id carried by the token",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "email",
			Usage: "Email carried by the token",
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "Token lifetime",
			Value: time.Hour,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.JWTSecret == "" {
			return fmt.Errorf("set JWT_SECRET")
		}

		userID := c.Int64("user")
		if userID <= 0 {
			return fmt.Errorf("user must be positive, got %d", userID)
		}

		token, err := auth.IssueToken(cfg.JWTSecret, &types.Identity{
			UserID: userID,
			Email:  c.String("email"),
		}, c.Duration("ttl"))
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}

		fmt.Println(token)

		return nil
	},
}
