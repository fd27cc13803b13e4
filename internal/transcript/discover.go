package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"withefuck/internal/logging"
)

const (
	// LogDirName is the directory under $HOME that the shell hook writes to.
	LogDirName = ".shell_logs"

	// LogFilePrefix prefixes every transcript file name.
	LogFilePrefix = "typescript-"

	// EnvTypescript points at the current session's transcript, exported by the
	// shell hook.
	EnvTypescript = "WTF_TYPESCRIPT"
)

// ErrNoLog is returned when no transcript can be located.
var ErrNoLog = errors.New("No script log found. Please run some commands first.")

// LogDir returns $HOME/.shell_logs.
func LogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return filepath.Join(home, LogDirName)
}

// LatestLogPath resolves the transcript to parse: the WTF_TYPESCRIPT override if
// it exists, otherwise the last typescript-* file in LogDir by name.
func LatestLogPath() (string, error) {
	if p := os.Getenv(EnvTypescript); p != "" {
		if _, err := os.Stat(p); err == nil {
			logging.TranscriptDebug("Using %s override: %s", EnvTypescript, p)
			return p, nil
		}
		logging.TranscriptWarn("%s points at missing file %s, falling back to %s", EnvTypescript, p, LogDir())
	}
	return latestIn(LogDir())
}

func latestIn(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ErrNoLog
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), LogFilePrefix) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", ErrNoLog
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}
