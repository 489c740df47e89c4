// Command createadmin seeds an admin account from environment variables.
// It is idempotent: running it against a database that already holds the
// admin email exits without changes.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/cinehub/booking-api/internal/auth"
	"github.com/cinehub/booking-api/internal/config"
	"github.com/cinehub/booking-api/internal/database"
	"github.com/cinehub/booking-api/internal/user"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	name := os.Getenv("ADMIN_NAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if name == "" || email == "" || password == "" {
		return errors.New("ADMIN_NAME, ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db := database.NewBunDB(sqlDB)
	defer db.Close()

	ctx := context.Background()
	repo := user.NewRepository(db)

	if existing, err := repo.GetByEmail(ctx, email); err == nil {
		fmt.Printf("admin account already exists: %s (%s)\n", existing.Email, existing.Role)
		return nil
	} else if !errors.Is(err, user.ErrNotFound) {
		return fmt.Errorf("failed to check existing admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := repo.Create(ctx, name, email, passwordHash, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("admin account created: %s (%s)\n", admin.Email, admin.ID)
	return nil
}
