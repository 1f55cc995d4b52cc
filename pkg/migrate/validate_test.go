package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeMigration(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const validBody = "-- +goose Up\nCREATE TABLE t (id int);\n-- +goose Down\nDROP TABLE t;\n"

func TestValidateDirAcceptsWellFormedMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_create_users.sql", validBody)
	writeMigration(t, dir, "20260102000000_create_orders.sql", validBody)
	writeMigration(t, dir, "README.md", "not a migration")

	require.NoError(t, ValidateDir(dir))
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "create_users.sql", validBody)

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid migration filename")
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_create_users.sql", validBody)
	writeMigration(t, dir, "20260101000000_create_orders.sql", validBody)

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate migration version")
}

func TestValidateDirCollectsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "bad-name.sql", validBody)
	writeMigration(t, dir, "20260101000000_missing_down.sql", "-- +goose Up\nSELECT 1;\n")

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
}

func TestValidateDirRejectsMissingHeaders(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_no_headers.sql", "SELECT 1;\n")

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "+goose Up")
	require.Contains(t, err.Error(), "+goose Down")
}
