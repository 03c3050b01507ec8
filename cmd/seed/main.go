// Package main provides a CLI tool for creating the schema and seeding the
// database with an admin user and optional demo data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"jobdesk/internal/core/id"
	"jobdesk/internal/infrastructure/storage/postgres"
	"jobdesk/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		url TEXT,
		email TEXT,
		telephone TEXT,
		address_country TEXT,
		address_locality TEXT,
		postal_code TEXT,
		street_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_organizations_name ON organizations (name)`,
	`CREATE INDEX IF NOT EXISTS idx_organizations_locality ON organizations (address_locality)`,

	`CREATE TABLE IF NOT EXISTS contact_points (
		id UUID PRIMARY KEY,
		organization_id UUID NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		email TEXT,
		telephone TEXT,
		name TEXT,
		contact_type TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_points_org ON contact_points (organization_id)`,

	`CREATE TABLE IF NOT EXISTS job_postings (
		id UUID PRIMARY KEY,
		organization_id UUID NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT,
		employment_type TEXT NOT NULL,
		salary_min NUMERIC(12,2),
		salary_max NUMERIC(12,2),
		salary_currency TEXT,
		valid_through TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_postings_org ON job_postings (organization_id)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login_at TIMESTAMPTZ,
		failed_login_attempts INT NOT NULL DEFAULT 0,
		locked_until TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id UUID PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		action TEXT NOT NULL,
		user_id TEXT,
		user_email TEXT,
		changes JSONB,
		changes_compressed BYTEA,
		compression_algo TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log (entity_type, entity_id)`,
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema is up to date")

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Infow("seeding completed successfully", "admin_id", adminID)
}

func createSchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@jobdesk.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`, adminEmail).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	adminID := id.New()
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, is_active)
		 VALUES ($1, $2, $3, 'Administrator', TRUE)`,
		adminID, adminEmail, string(hash),
	)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail)
	return adminID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM organizations`).Scan(&count); err != nil {
		return fmt.Errorf("count organizations: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	orgID := id.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO organizations (id, name, email, address_country, address_locality, postal_code, street_address)
		 VALUES ($1, 'Acme GmbH', 'info@acme.example', 'DE', 'Berlin', '10115', 'Invalidenstr. 1')`,
		orgID,
	)
	if err != nil {
		return fmt.Errorf("insert demo organization: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO contact_points (id, organization_id, email, telephone, name, contact_type) VALUES
		 ($1, $3, 'hr@acme.example', NULL, 'HR Desk', 'HR'),
		 ($2, $3, NULL, '+49 30 1234567', 'Reception', 'general')`,
		id.New(), id.New(), orgID,
	)
	if err != nil {
		return fmt.Errorf("insert demo contact points: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO job_postings (id, organization_id, title, employment_type, salary_min, salary_max, salary_currency)
		 VALUES ($1, $2, 'Backend Engineer', 'FULL_TIME', 52000, 68000, 'EUR')`,
		id.New(), orgID,
	)
	if err != nil {
		return fmt.Errorf("insert demo job posting: %w", err)
	}

	log.Infow("demo data created", "organization_id", orgID)
	return nil
}
