package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testDB      *gorm.DB
	testDBErr   error
	testDBOnce  sync.Once
	pgContainer *postgres.PostgresContainer
)

// TestMain terminates the PostgreSQL container, if one was started, after all tests ran
func TestMain(m *testing.M) {
	code := m.Run()

	if pgContainer != nil {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

// openTestDB connects to TEST_DB_HOST when set, otherwise starts a PostgreSQL container.
// Tests are skipped when no container runtime is available.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	testDBOnce.Do(func() {
		ctx := context.Background()

		var dsn string
		if dbHost != "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				dbHost,
				envOr("TEST_DB_PORT", "5432"),
				envOr("TEST_DB_USER", "postgres"),
				envOr("TEST_DB_PASSWORD", "postgres"),
				envOr("TEST_DB_NAME", "test_db"))
		} else {
			pgContainer, testDBErr = postgres.Run(ctx,
				"postgres:18-alpine",
				postgres.WithDatabase("test_db"),
				postgres.WithUsername("postgres"),
				postgres.WithPassword("postgres"),
				testcontainers.WithWaitStrategy(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(60*time.Second)),
			)
			if testDBErr != nil {
				return
			}

			dsn, testDBErr = pgContainer.ConnectionString(ctx, "sslmode=disable")
			if testDBErr != nil {
				return
			}
		}

		testDB, testDBErr = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if testDBErr != nil {
			return
		}

		testDBErr = initializeTestDatabase(testDB)
	})

	require.NoError(t, testDBErr)
	return testDB
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// initializeTestDatabase runs the schema initialization
func initializeTestDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaPath := filepath.Join("..", "..", "db", "init_pg_db.sql")
	schemaSQL, err := os.ReadFile(schemaPath) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// initPGTestDB gives each test its own transaction, rolled back on cleanup
func initPGTestDB(t *testing.T) Store {
	db := openTestDB(t)

	tx := db.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is a no-op, the rollback in initPGTestDB restores state
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

// TestPostgreSQLStore_ActiveListingIndex checks the partial unique index directly
func TestPostgreSQLStore_ActiveListingIndex(t *testing.T) {
	db := openTestDB(t)
	tx := db.Begin()
	t.Cleanup(func() { tx.Rollback() })

	insert := func(id, ledgerID string) error {
		return tx.Exec(`INSERT INTO listings (id, ledger_listing_id, origin, asset_contract, asset_id, seller, price_per_period, min_duration, max_duration, status)
			VALUES (?, ?, 'ledger', ?, '1', ?, 1, 1, 1, 'active')`, id, ledgerID, testAssetContract, testAlice).Error
	}

	require.NoError(t, insert(LedgerListingUUID("1"), "1"))
	assert.Error(t, insert(LedgerListingUUID("2"), "2"))
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 10, open)
	assert.Equal(t, 2, idle)
	assert.Equal(t, 30*time.Minute, lifetime)
	assert.Equal(t, 5*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 8, time.Minute, time.Minute)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}
