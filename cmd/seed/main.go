package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/spanner"

	catalogrepo "github.com/light-bringer/backoffice-service/internal/app/catalog/repo"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/seed_categories"
	identityrepo "github.com/light-bringer/backoffice-service/internal/app/identity/repo"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/bootstrap_admin"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
)

// Config for the seed job.
type Config struct {
	SpannerDB      string
	AdminUsername  string
	AdminEmail     string
	AdminPassword  string
	BcryptCost     int
	SkipAdmin      bool
	SkipCategories bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.StringVar(&config.AdminUsername, "admin-username", getEnvOrDefault("ADMIN_USERNAME", "admin"), "Username of the first administrator")
	flag.StringVar(&config.AdminEmail, "admin-email", getEnvOrDefault("ADMIN_EMAIL", "admin@example.com"), "Email of the first administrator")
	flag.StringVar(&config.AdminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "Password of the first administrator")
	flag.IntVar(&config.BcryptCost, "bcrypt-cost", 12, "bcrypt cost for the administrator password")
	flag.BoolVar(&config.SkipAdmin, "skip-admin", false, "Do not create the first administrator")
	flag.BoolVar(&config.SkipCategories, "skip-categories", false, "Do not seed the category tree")
	flag.Parse()

	if config.SpannerDB == "" {
		log.Fatal("Error: -database flag or SPANNER_DATABASE is required")
	}
	if !config.SkipAdmin && config.AdminPassword == "" {
		log.Fatal("Error: -admin-password or ADMIN_PASSWORD is required unless -skip-admin is set")
	}

	if err := run(context.Background(), config); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Seed completed successfully")
}

func run(ctx context.Context, config Config) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	comm := committer.NewCommitter(client)

	if !config.SkipAdmin {
		bootstrap := bootstrap_admin.NewInteractor(identityrepo.NewUserRepo(), outbox.NewRepo(), comm, clock.NewRealClock(), config.BcryptCost)
		resp, err := bootstrap.Execute(ctx, &bootstrap_admin.Request{
			Username: config.AdminUsername,
			Email:    config.AdminEmail,
			Password: config.AdminPassword,
		})
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if resp.Created {
			log.Printf("Created administrator %s (%s)", config.AdminUsername, resp.UserID)
		} else {
			log.Println("Users already exist, administrator not created")
		}
	}

	if !config.SkipCategories {
		seed := seed_categories.NewInteractor(catalogrepo.NewCategoryRepo(), comm)
		resp, err := seed.Execute(ctx, &seed_categories.Request{})
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		log.Printf("Categories: %d created, %d already present", len(resp.Created), resp.Skipped)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
