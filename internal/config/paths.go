package config

import (
	"os"
	"path/filepath"

	"withefuck/internal/logging"
)

const (
	// FileName is the primary config file name.
	FileName = "wtf.json"

	// YAMLFileName is accepted wherever FileName is.
	YAMLFileName = "wtf.yaml"

	// AppDirName is the directory under $XDG_CONFIG_HOME.
	AppDirName = "withefuck"
)

// locator resolves config locations. Fields are filled from the process
// environment by newLocator; tests construct it directly.
type locator struct {
	cwd     string
	binDir  string
	xdgHome string
	home    string
}

func newLocator() locator {
	l := locator{cwd: ".", binDir: BinaryDir()}
	if wd, err := os.Getwd(); err == nil {
		l.cwd = wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.home = home
	}
	l.xdgHome = os.Getenv("XDG_CONFIG_HOME")
	if l.xdgHome == "" {
		base := l.home
		if base == "" {
			base = "~"
		}
		l.xdgHome = filepath.Join(base, ".config")
	}
	return l
}

// candidates lists every path checked for reading, in priority order.
func (l locator) candidates() []string {
	var paths []string
	add := func(dir, prefix string) {
		paths = append(paths,
			filepath.Join(dir, prefix+FileName),
			filepath.Join(dir, prefix+YAMLFileName))
	}
	add(l.cwd, "")
	add(l.binDir, "")
	add(filepath.Join(l.xdgHome, AppDirName), "")
	if l.home != "" {
		add(l.home, ".")
	}
	return paths
}

func (l locator) find() string {
	for _, p := range l.candidates() {
		if _, err := os.Stat(p); err == nil {
			logging.ConfigDebug("Using config file %s", p)
			return p
		}
	}
	return filepath.Join(l.binDir, FileName)
}

// BinaryDir returns the directory holding the running executable, or "." when it
// cannot be determined.
func BinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// FindPathForRead returns the first existing config file among ./, the binary
// directory, $XDG_CONFIG_HOME/withefuck and ~/.wtf.*, preferring JSON over YAML
// in each. When none exists it returns the binary-directory wtf.json.
func FindPathForRead() string {
	return newLocator().find()
}

// WizardPath is where --config writes.
func WizardPath() string {
	return filepath.Join(BinaryDir(), FileName)
}
