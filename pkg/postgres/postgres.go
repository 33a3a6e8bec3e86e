package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/doffpett/evhenter/config"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS event_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			icon VARCHAR(50),
			color VARCHAR(20)
		)`,

		`CREATE TABLE IF NOT EXISTS locations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			city VARCHAR(100) NOT NULL,
			region VARCHAR(100),
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			reputation INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(255) NOT NULL,
			slug VARCHAR(300) UNIQUE NOT NULL,
			description TEXT,
			event_type_id UUID REFERENCES event_types(id),
			location_id UUID REFERENCES locations(id),
			venue_name VARCHAR(255),
			venue_address VARCHAR(500),
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ,
			original_url TEXT,
			ticket_url TEXT,
			image_url TEXT,
			organizer_name VARCHAR(255),
			organizer_url TEXT,
			price_min NUMERIC(10,2),
			price_max NUMERIC(10,2),
			currency VARCHAR(3) DEFAULT 'NOK',
			is_free BOOLEAN NOT NULL DEFAULT false,
			is_featured BOOLEAN NOT NULL DEFAULT false,
			is_cancelled BOOLEAN NOT NULL DEFAULT false,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			source VARCHAR(50) NOT NULL DEFAULT 'manual',
			submitted_by UUID REFERENCES users(id),
			capacity INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			published_at TIMESTAMPTZ,
			search_vector tsvector GENERATED ALWAYS AS (
				to_tsvector('norwegian', coalesce(title, '') || ' ' || coalesce(description, ''))
			) STORED
		)`,

		// Indexes for the listing predicate and ordering
		`CREATE INDEX IF NOT EXISTS idx_events_visibility ON events(status, is_cancelled, start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_featured_start ON events(is_featured DESC, start_date ASC)`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_type_id ON events(event_type_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_location_id ON events(location_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_slug ON events(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_events_search ON events USING GIN(search_vector)`,
		`CREATE INDEX IF NOT EXISTS idx_locations_city ON locations(city)`,

		// Baseline event type taxonomy
		`INSERT INTO event_types (name, slug, icon, color) VALUES
			('Konsert', 'konsert', 'music', '#e74c3c'),
			('Workshop', 'workshop', 'tools', '#3498db'),
			('Festival', 'festival', 'star', '#f39c12'),
			('Teater', 'teater', 'masks', '#9b59b6'),
			('Sport', 'sport', 'trophy', '#2ecc71'),
			('Mat og drikke', 'mat-drikke', 'utensils', '#e67e22'),
			('Kunst', 'kunst', 'palette', '#1abc9c'),
			('Nettverking', 'nettverking', 'users', '#34495e'),
			('Marked', 'marked', 'shopping-bag', '#d35400'),
			('Konferanse', 'konferanse', 'briefcase', '#2c3e50')
		ON CONFLICT (slug) DO NOTHING`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
