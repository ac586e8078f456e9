package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"rentreceipt/internal/db"
	"rentreceipt/internal/receipt"
	"rentreceipt/internal/store"

	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var renderCommand = &cli.Command{
	Name:  "render",
	Usage: "Render the receipt of an accommodation's active lease to a local file",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:     "id",
			Usage:    "Accommodation id",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output file, defaults to receipt_<id>.pdf",
		},
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "Print the receipt data before rendering",
		},
		&cli.Int64Flag{
			Name:  "user",
			Usage: "Also store the receipt in the bucket under this user id",
		},
	},
	Action: render,
}

func render(c *cli.Context) error {
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

	accommodationID := c.Int64("id")
	builder := receipt.NewService(
		store.NewAccommodationRepository(pool),
		store.NewLeaseRepository(pool),
		cfg.CurrencyName,
	)

	data, err := builder.Build(ctx, accommodationID)
	if err != nil {
		return fmt.Errorf("failed to build receipt data: %w", err)
	}

	if c.Bool("dump") {
		pp.Println(data)
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	body, err := renderer.Render(data)
	if err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}

	out := c.String("out")
	if out == "" {
		out = fmt.Sprintf("receipt_%d.pdf", accommodationID)
	}

	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	logrus.WithField("file", out).WithField("bytes", len(body)).Info("receipt written")

	userID := c.Int64("user")
	if userID <= 0 {
		return nil
	}

	if err := requireStorage(cfg); err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return err
	}

	documents, err := newDocuments(cfg, awsConfig)
	if err != nil {
		return err
	}

	stored, err := documents.Place(ctx, userID, data.LeaseID, filepath.Base(out), body)
	if err != nil {
		return fmt.Errorf("failed to store receipt: %w", err)
	}

	logrus.WithField("key", stored.Key).Info("receipt stored")
	fmt.Println(stored.URL)

	return nil
}
