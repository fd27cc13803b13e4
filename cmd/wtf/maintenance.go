package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"withefuck/internal/config"
	"withefuck/internal/logging"
	"withefuck/internal/transcript"
)

// installCommand is the command that installs or updates wtf.
const installCommand = "go install withefuck/cmd/wtf@latest"

func runUpdate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wtf %s\n", version)
	fmt.Fprintf(out, "To update, run:\n\n  %s\n", installCommand)
	return nil
}

// runUninstall removes the wizard's config file after confirmation. The shell
// hook and transcripts are left for the user to remove.
func runUninstall(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	path := config.WizardPath()

	fmt.Fprintf(out, "This removes %s. Continue? [y/N] ", path)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Uninstall cancelled.")
		return nil
	}

	switch err := os.Remove(path); {
	case err == nil:
		logging.Config("Removed %s", path)
		fmt.Fprintf(out, "Removed %s\n", path)
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(out, "No configuration at %s\n", path)
	default:
		return fmt.Errorf("failed to remove configuration: %w", err)
	}

	fmt.Fprintf(out, "Remove the shell hook from your shell rc file, the transcripts in %s and the wtf binary to finish.\n", transcript.LogDir())
	return nil
}
