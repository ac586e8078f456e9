package main

import (
	"context"
	"fmt"
	"time"

	"rentreceipt/internal/auth"
	"rentreceipt/internal/db"
	"rentreceipt/internal/seed"
	"rentreceipt/internal/store"
	"rentreceipt/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Create the schema and a demo landlord, tenant and lease",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := requireDatabase(cfg); err != nil {
			return err
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		if err := db.EnsureSchema(ctx, pool, cfg.DatabaseSchema); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}

		result, err := seed.SeedDemoLease(
			ctx,
			store.NewUserRepository(pool),
			store.NewAccommodationRepository(pool),
			store.NewLeaseRepository(pool),
			time.Now(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed demo lease: %w", err)
		}

		if result.Created {
			fmt.Printf("accommodation %d, lease %d\n", result.AccommodationID, result.LeaseID)
		}

		if cfg.JWTSecret == "" {
			return nil
		}

		token, err := auth.IssueToken(cfg.JWTSecret, &types.Identity{UserID: result.LandlordID}, 24*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}

		fmt.Println(token)

		return nil
	},
}
