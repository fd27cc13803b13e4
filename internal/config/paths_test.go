package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocator(t *testing.T) locator {
	t.Helper()
	root := t.TempDir()
	return locator{
		cwd:     filepath.Join(root, "cwd"),
		binDir:  filepath.Join(root, "bin"),
		xdgHome: filepath.Join(root, "xdg"),
		home:    filepath.Join(root, "home"),
	}
}

func TestLocatorPriority(t *testing.T) {
	l := testLocator(t)

	assert.Equal(t, filepath.Join(l.binDir, FileName), l.find(), "defaults to the binary dir")

	steps := []string{
		filepath.Join(l.home, ".wtf.yaml"),
		filepath.Join(l.home, ".wtf.json"),
		filepath.Join(l.xdgHome, AppDirName, YAMLFileName),
		filepath.Join(l.xdgHome, AppDirName, FileName),
		filepath.Join(l.binDir, YAMLFileName),
		filepath.Join(l.binDir, FileName),
		filepath.Join(l.cwd, YAMLFileName),
		filepath.Join(l.cwd, FileName),
	}
	// Each newly created file outranks everything created before it.
	for _, p := range steps {
		writeFile(t, p, "{}")
		assert.Equal(t, p, l.find())
	}
}

func TestLocatorWithoutHome(t *testing.T) {
	l := testLocator(t)
	l.home = ""
	for _, p := range l.candidates() {
		assert.NotContains(t, filepath.Base(p), ".wtf")
	}
	assert.Len(t, l.candidates(), 6)
}

func TestLoadDiscoversConfig(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "xdg"))
	t.Chdir(root)

	_, err := Load()
	require.ErrorIs(t, err, ErrNotFound)

	writeFile(t, filepath.Join(root, "xdg", AppDirName, FileName),
		`{"api_key":"k","api_endpoint":"e","model":"from-xdg"}`)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-xdg", cfg.Model)

	writeFile(t, filepath.Join(root, FileName), `{"api_key":"k","api_endpoint":"e","model":"from-cwd"}`)
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "from-cwd", cfg.Model)
}

func TestWizardPath(t *testing.T) {
	assert.Equal(t, FileName, filepath.Base(WizardPath()))
	assert.Equal(t, BinaryDir(), filepath.Dir(WizardPath()))
}
