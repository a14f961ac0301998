package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cloud.google.com/go/spanner"

	ledgerrepo "github.com/light-bringer/backoffice-service/internal/app/ledger/repo"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/release_abandoned_carts"
	appconfig "github.com/light-bringer/backoffice-service/internal/config"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/logging"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
)

// Config for the abandoned cart release job.
type Config struct {
	SpannerDB string
	Hours     int
	DryRun    bool
	LogLevel  string
}

func main() {
	defaults := appconfig.Default()
	if err := defaults.ApplyEnvOverrides(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&config.Hours, "hours", int(defaults.Cleanup.AbandonedAfter/time.Hour), "Release items that have sat in a cart for at least this many hours")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be released without changing anything")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level")
	flag.Parse()

	if config.SpannerDB == "" {
		log.Fatal("Error: -database flag or SPANNER_DATABASE is required")
	}
	if config.Hours < 1 {
		log.Fatal("Error: -hours must be at least 1")
	}

	if err := run(context.Background(), config); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
}

func run(ctx context.Context, config Config) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	interactor := release_abandoned_carts.NewInteractor(
		ledgerrepo.NewProductRepo(),
		ledgerrepo.NewCartRepo(client),
		outbox.NewRepo(),
		committer.NewCommitter(client),
		clock.NewRealClock(),
		logging.New(os.Stderr, config.LogLevel, "text"),
	)

	report, err := interactor.Execute(ctx, &release_abandoned_carts.Request{
		OlderThan: time.Duration(config.Hours) * time.Hour,
		DryRun:    config.DryRun,
	})
	if err != nil {
		return err
	}

	printReport(report)
	if report.Failed > 0 {
		return fmt.Errorf("%d carts could not be released", report.Failed)
	}
	return nil
}

func printReport(report *release_abandoned_carts.Report) {
	verb := "Released"
	if report.DryRun {
		verb = "Would release"
	}

	log.Printf("Cutoff: %s", report.Cutoff.Format(time.RFC3339))
	for _, c := range report.Carts {
		log.Printf("  cart %s (user %s): %d items, %d units", c.CartID, c.UserID, c.Items, c.Units)
	}
	log.Printf("%s %d items (%d units) from %d carts", verb, report.TotalItems, report.TotalUnits, len(report.Carts))
}
