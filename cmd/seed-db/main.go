// Command seed-db runs migrations and loads a starter set of gift codes so a
// fresh database is immediately usable.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"

	"github.com/xenking/cafepos/internal/domain/giftcode"
	"github.com/xenking/cafepos/internal/domain/money"
	"github.com/xenking/cafepos/internal/storage/postgres"
)

func main() {
	var databaseURL string

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return seedGiftCodes(ctx, postgres.NewGiftCodeRepository(pool))
}

func seedGiftCodes(ctx context.Context, repo *postgres.GiftCodeRepository) error {
	codes := []giftcode.Code{
		{Code: "WELCOME5", Amount: money.MustParse("5.00"), Description: "Welcome gift: 5.00 off"},
		{Code: "COFFEE10", Amount: money.MustParse("10.00"), Description: "Ten off your order"},
		{Code: "REGULAR15", Amount: money.MustParse("15.00"), Description: "Regulars club: 15.00 off"},
	}

	slog.Info("seeding gift codes", slog.Int("count", len(codes)))

	for _, c := range codes {
		if err := repo.Upsert(ctx, c); err != nil {
			return errors.Wrapf(err, "upsert gift code %s", c.Code)
		}

		slog.Info("upserted gift code",
			slog.String("code", c.Code),
			slog.String("amount", c.Amount.String()),
		)
	}

	return nil
}
