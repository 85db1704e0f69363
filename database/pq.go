package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/campuskit/portal-api/config"
)

// PostgreSQLStore is a raw database/sql connection used for read-only
// dashboard aggregates where GORM adds nothing. It shares the database with
// GORMStore.
type PostgreSQLStore struct {
	db *sql.DB
}

// Start opens a raw lib/pq connection.
func Start() (*PostgreSQLStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD, getEnv.DB_NAME, getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL (raw).")
	return &PostgreSQLStore{db: db}, nil
}

// Init is a no-op; migrations run through the GORM store.
func (s *PostgreSQLStore) Init() error { return nil }

// Close closes the raw connection.
func (s *PostgreSQLStore) Close() error { return s.db.Close() }

// HealthCheck pings the database.
func (s *PostgreSQLStore) HealthCheck() error { return s.db.Ping() }

// GetDB returns the underlying *sql.DB.
func (s *PostgreSQLStore) GetDB() interface{} { return s.db }

// DashboardCounts holds the headline numbers on the admin dashboard.
type DashboardCounts struct {
	Students      int64   `json:"students"`
	Faculty       int64   `json:"faculty"`
	Subjects      int64   `json:"subjects"`
	Allocations   int64   `json:"allocations"`
	Sessions      int64   `json:"sessions"`
	FeesCollected float64 `json:"fees_collected"`
	FeesPending   float64 `json:"fees_pending"`
}

// CountDashboard gathers admin dashboard aggregates in one round of simple
// COUNT/SUM queries. Soft-deleted rows are excluded to match GORM reads.
func (s *PostgreSQLStore) CountDashboard() (*DashboardCounts, error) {
	counts := &DashboardCounts{}

	countQueries := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM students WHERE deleted_at IS NULL", &counts.Students},
		{"SELECT COUNT(*) FROM faculties WHERE deleted_at IS NULL", &counts.Faculty},
		{"SELECT COUNT(*) FROM subjects WHERE deleted_at IS NULL", &counts.Subjects},
		{"SELECT COUNT(*) FROM subject_allocations WHERE deleted_at IS NULL", &counts.Allocations},
		{"SELECT COUNT(*) FROM attendance_sessions WHERE deleted_at IS NULL", &counts.Sessions},
	}

	for _, q := range countQueries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("dashboard count failed: %w", err)
		}
	}

	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(paid_amount), 0), COALESCE(SUM(total_fee - paid_amount), 0)
		 FROM fee_records WHERE deleted_at IS NULL`,
	).Scan(&counts.FeesCollected, &counts.FeesPending)
	if err != nil {
		return nil, fmt.Errorf("dashboard fee totals failed: %w", err)
	}

	return counts, nil
}
