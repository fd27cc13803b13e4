package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvTypescript, "")
	return home
}

func TestLatestLogPath(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, LogDirName)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "typescript-sub"), 0o755))
	for _, name := range []string{
		"typescript-20240101-120000",
		"typescript-20250301-090000",
		"typescript-20241231-235959",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	got, err := LatestLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "typescript-20250301-090000"), got)
}

func TestLatestLogPathOverride(t *testing.T) {
	home := setupHome(t)
	override := filepath.Join(home, "session.log")
	require.NoError(t, os.WriteFile(override, nil, 0o644))
	t.Setenv(EnvTypescript, override)

	got, err := LatestLogPath()
	require.NoError(t, err)
	assert.Equal(t, override, got)
}

func TestLatestLogPathMissingOverrideFallsBack(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, LogDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typescript-1"), nil, 0o644))
	t.Setenv(EnvTypescript, filepath.Join(home, "gone.log"))

	got, err := LatestLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "typescript-1"), got)
}

func TestLatestLogPathNoLog(t *testing.T) {
	home := setupHome(t)

	_, err := LatestLogPath()
	assert.ErrorIs(t, err, ErrNoLog)

	require.NoError(t, os.MkdirAll(filepath.Join(home, LogDirName), 0o755))
	_, err = LatestLogPath()
	assert.ErrorIs(t, err, ErrNoLog)
	assert.Equal(t, "No script log found. Please run some commands first.", err.Error())
}

func TestGetLastNCommands(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, LogDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	raw := transcriptOf("ls\r\na", "pwd\r\n/home", "wtf\r\nUnable to fix the command or no fix needed.")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typescript-9"), []byte(raw), 0o644))

	recs, err := GetLastNCommands(1)
	require.NoError(t, err)
	assert.Equal(t, []Record{{Command: "pwd", Output: "/home\nUnable to fix the command or no fix needed."}}, recs)
}
