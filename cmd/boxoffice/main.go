package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/srgjo27/royale_boxoffice/internal/adapter/console"
	"github.com/srgjo27/royale_boxoffice/internal/adapter/repository/memory"
	"github.com/srgjo27/royale_boxoffice/internal/adapter/repository/postgres"
	"github.com/srgjo27/royale_boxoffice/internal/config"
	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
	"github.com/srgjo27/royale_boxoffice/internal/platform/database"
	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
	"github.com/srgjo27/royale_boxoffice/internal/platform/retry"
)

func main() {
	app := &cli.App{
		Name:  "boxoffice",
		Usage: "Browse performances at the Royale and buy tickets",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "memory",
				Usage: "use an in-memory catalog with sample performances instead of Postgres",
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "create the schema and insert sample performances into Postgres",
				Action: func(c *cli.Context) error {
					cfg, err := setup()
					if err != nil {
						return err
					}

					db, err := database.NewPostgresDB(c.Context, cfg.Database)
					if err != nil {
						return err
					}
					defer db.Close()

					if err := postgres.InitializeDatabaseSchema(c.Context, db); err != nil {
						return err
					}

					repo := postgres.NewPerformanceRepository(db)
					for _, p := range samplePerformances(time.Now()) {
						id, err := repo.Create(c.Context, p)
						if err != nil {
							return err
						}

						fmt.Printf("%d\t%s\t%s\n", id, p.StartDateTime.Format("02-01-06 15:04"), p.Title)
					}

					return nil
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func setup() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if err := logging.Init(cfg.LogLevel, false); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	var (
		catalog      ports.Catalog
		registration ports.Registration
		bookings     ports.BookingRepository
	)

	if c.Bool("memory") {
		mem, err := memory.NewCatalog(samplePerformances(time.Now())...)
		if err != nil {
			return err
		}

		catalog = mem
		registration = &counterRegistration{}
	} else {
		db, err := database.NewPostgresDB(c.Context, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.InitializeDatabaseSchema(c.Context, db); err != nil {
			return err
		}

		catalog = postgres.NewPerformanceRepository(db)
		registration = postgres.NewCustomerRepository(db)
		bookings = postgres.NewBookingRepository(db)
	}

	input := console.NewInput(os.Stdin, os.Stdout)

	reconciler := services.NewInventoryReconciler(
		catalog,
		registration,
		console.NewPaymentPrompt(input, cfg.MaxInputAttempts),
		bookings,
		retry.Policy{Attempts: cfg.CallRetries, Timeout: cfg.CallTimeout, InitialInterval: 100 * time.Millisecond},
	)

	session := services.NewSession(catalog, reconciler, cfg.ConcessionRate, cfg.MaxInputAttempts)

	return console.NewBoxOffice(session, input, os.Stdout, cfg.MaxInputAttempts).Run(c.Context)
}

// counterRegistration hands out sequential ids when running without a database.
type counterRegistration struct {
	last int64
}

func (r *counterRegistration) Register(ctx context.Context, profile domain.Profile) (int64, error) {
	r.last++
	return r.last, nil
}
