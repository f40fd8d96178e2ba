package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users-Table", "add_users_table"},
		{"ADD_USERS_TABLE", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"Add Users 123", "add_users_123"},
		{"create-progress-records", "create_progress_records"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	tmpDir := t.TempDir()

	mf, err := CreateMigration(tmpDir, "add caregiver notes")
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "000001", mf.Version)
	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	for _, path := range []string{mf.UpPath, mf.DownPath} {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}

	// Second migration gets the next sequential version.
	mf2, err := CreateMigration(tmpDir, "another change")
	require.NoError(t, err)
	assert.Equal(t, "000002", mf2.Version)
}

func TestNextVersion_SkipsUnrelatedFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "000042_existing.up.sql"), []byte("SELECT 1;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "embed.go"), []byte("package migrations"), 0644))

	n, err := nextVersion(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 43, n)
}

func TestListMigrations(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{
		"000001_create_identity.up.sql",
		"000001_create_identity.down.sql",
		"000002_create_children.up.sql",
		"000002_create_children.down.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("SELECT 1;"), 0644))
	}

	migrations, err := ListMigrations(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_identity", "000002_create_children"}, migrations)
}

func TestListMigrations_MissingDir(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
