package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/database"
	"kore-landing-backend/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLeads_SampleFile(t *testing.T) {
	db, err := connectWithRetry(config.DriverSQLite, "file::memory:", 1, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	created, err := seedLeads(context.Background(), db, filepath.Join("data", "leads.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 3, created)
	var count int64
	require.NoError(t, db.Model(&models.Lead{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestSeedLeads_InvalidEntryInsertsNothing(t *testing.T) {
	db, err := connectWithRetry(config.DriverSQLite, "file::memory:", 1, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	path := filepath.Join(t.TempDir(), "leads.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
leads:
  - name: Ana
    business_name: Tienda
    email: ana@example.com
    industry: Moda
    branches: 1
  - name: Bad
    business_name: Bad
    email: bad
    industry: Moda
    branches: 0
`), 0o600))

	created, err := seedLeads(context.Background(), db, path)

	assert.Error(t, err)
	assert.Equal(t, 0, created)
	var count int64
	require.NoError(t, db.Model(&models.Lead{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedLeads_FailedInsertRollsBack(t *testing.T) {
	db, err := connectWithRetry(config.DriverSQLite, "file::memory:", 1, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, db.Exec(`CREATE TRIGGER reject_blocked BEFORE INSERT ON leads
WHEN NEW.email = 'blocked@example.com'
BEGIN SELECT RAISE(ABORT, 'blocked'); END`).Error)

	path := filepath.Join(t.TempDir(), "leads.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
leads:
  - name: Ana
    business_name: Tienda
    email: ana@example.com
    industry: Moda
    branches: 1
  - name: Blocked
    business_name: Blocked
    email: blocked@example.com
    industry: Moda
    branches: 2
  - name: Luis
    business_name: Taller
    email: luis@example.com
    industry: Servicios
    branches: 1
`), 0o600))

	created, err := seedLeads(context.Background(), db, path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead 1")
	assert.Equal(t, 0, created)
	var count int64
	require.NoError(t, db.Model(&models.Lead{}).Count(&count).Error)
	assert.Zero(t, count)
}
