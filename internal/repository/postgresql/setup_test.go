package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
	testDBErr  error
)

// getTestDB membuat koneksi ke test database. Test di-skip jika
// TEST_DATABASE_URL tidak di-set.
func getTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, testDBErr, "failed to connect to test database")

	return testDB
}

// setupTestData membersihkan semua tabel sebelum test
func setupTestData(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"notification_preferences",
		"notifications",
		"check_clocks",
		"shift_assignments",
		"shift_setting_times",
		"shift_settings",
		"employees",
		"users",
		"companies",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// Helper untuk membuat company untuk testing
func createTestCompany(t *testing.T, ctx context.Context, db *database.DB) string {
	t.Helper()

	var companyID string
	err := db.QueryRow(ctx, `
		INSERT INTO companies (id, name, created_at, updated_at)
		VALUES (uuidv7(), 'Test Company', NOW(), NOW())
		RETURNING id
	`).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

// Helper untuk membuat user untuk testing
func createTestUser(t *testing.T, ctx context.Context, db *database.DB, companyID, email, role string) string {
	t.Helper()

	var userID string
	err := db.QueryRow(ctx, `
		INSERT INTO users (id, company_id, email, role, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id
	`, companyID, email, role).Scan(&userID)
	require.NoError(t, err)
	return userID
}

// Helper untuk membuat employee untuk testing
func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, companyID, firstName string) string {
	t.Helper()

	var employeeID string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, company_id, first_name, jobdesk, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, 'Software Engineer', NOW(), NOW())
		RETURNING id
	`, companyID, firstName).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

// Helper untuk membuat shift setting beserta jam kerjanya
func createTestShiftSetting(t *testing.T, ctx context.Context, db *database.DB, name string, day, clockInMinutes, clockOutMinutes int) string {
	t.Helper()

	var settingID string
	err := db.QueryRow(ctx, `
		INSERT INTO shift_settings (id, name, type, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, 'regular', TRUE, NOW(), NOW())
		RETURNING id
	`, name).Scan(&settingID)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO shift_setting_times (id, shift_setting_id, day, clock_in_minutes, clock_out_minutes)
		VALUES (uuidv7(), $1, $2, $3, $4)
	`, settingID, day, clockInMinutes, clockOutMinutes)
	require.NoError(t, err)

	return settingID
}
