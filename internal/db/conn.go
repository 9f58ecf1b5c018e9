package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sichenz/AdNova/internal/db/migrations"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection holding briefs, ads, feedback and
// brand voices.
type Store struct {
	*sql.DB
	*Queries
}

// NewStore creates a new database connection.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Open connection
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection
	sqlDB.SetMaxOpenConns(1) // SQLite doesn't handle concurrent writes well

	// Enable WAL mode and foreign keys
	if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	store := &Store{
		DB:      sqlDB,
		Queries: New(sqlDB),
	}

	return store, nil
}

// Migrate runs all pending database migrations.
func (s *Store) Migrate(ctx context.Context) error {
	slog.Info("running database migrations")

	// Create migrations tracking table
	_, err := s.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	// Get applied migrations
	rows, err := s.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("scan migration: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate migrations: %w", err)
	}

	// Get migration files
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	// Apply pending migrations
	for _, file := range files {
		if applied[file] {
			slog.Debug("migration already applied", "file", file)
			continue
		}

		slog.Info("applying migration", "file", file)

		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		// Extract up migration (before -- +migrate Down)
		sqlContent := extractUpMigration(string(content))

		// Execute migration in transaction
		tx, err := s.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlContent); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %s: %w", file, err)
		}

		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", file); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}

		slog.Info("migration applied successfully", "file", file)
	}

	return nil
}

// extractUpMigration extracts the "up" portion of a migration file.
func extractUpMigration(content string) string {
	// Find -- +migrate Down marker
	downMarker := "-- +migrate Down"
	idx := strings.Index(content, downMarker)
	if idx == -1 {
		return content
	}

	// Get content before Down marker
	up := content[:idx]

	// Remove -- +migrate Up marker if present
	upMarker := "-- +migrate Up"
	up = strings.TrimPrefix(up, upMarker)
	up = strings.TrimSpace(up)

	return up
}

// Stats summarizes what the store holds.
type Stats struct {
	Briefs       int64               `json:"briefs"`
	Ads          int64               `json:"ads"`
	Feedback     int64               `json:"feedback"`
	BrandVoices  int64               `json:"brand_voices"`
	Reflections  int64               `json:"reflections"`
	FailedSlots  int64               `json:"failed_slots"`
	AverageScore float64             `json:"average_score"`
	HasScores    bool                `json:"has_scores"`
	AdsByType    []CountAdsByTypeRow `json:"ads_by_type"`
}

// Stats collects row counts for the stats command and health endpoint.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error

	if st.Briefs, err = s.CountBriefs(ctx); err != nil {
		return st, fmt.Errorf("count briefs: %w", err)
	}
	if st.Ads, err = s.CountAds(ctx); err != nil {
		return st, fmt.Errorf("count ads: %w", err)
	}
	if st.Feedback, err = s.CountFeedback(ctx); err != nil {
		return st, fmt.Errorf("count feedback: %w", err)
	}
	if st.BrandVoices, err = s.CountBrandVoices(ctx); err != nil {
		return st, fmt.Errorf("count brand voices: %w", err)
	}
	if st.Reflections, err = s.CountReflections(ctx); err != nil {
		return st, fmt.Errorf("count reflections: %w", err)
	}
	if st.FailedSlots, err = s.SumFailedVariations(ctx); err != nil {
		return st, fmt.Errorf("sum failed variations: %w", err)
	}
	avg, err := s.AverageScore(ctx)
	if err != nil {
		return st, fmt.Errorf("average score: %w", err)
	}
	st.AverageScore, st.HasScores = avg.Float64, avg.Valid
	if st.AdsByType, err = s.CountAdsByType(ctx); err != nil {
		return st, fmt.Errorf("count ads by type: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}
