package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"withefuck/internal/config"
	"withefuck/internal/perception"
	"withefuck/internal/tactile"
	"withefuck/internal/transcript"
)

// Seams replaced in tests.
var (
	loadConfig  = config.Load
	newClient   = perception.NewClient
	newExecutor = func() tactile.AuditedExecutor { return tactile.NewShellExecutor() }
	lastRecords = readLastRecords
)

// infoFlags are the flags of this CLI that only print information. "-v" is
// --verbose here, so a wrapped "wtf -v" line is still a fix request.
var infoFlags = []string{"--help", "-h", "--version", "--config", "--update", "--uninstall"}

// newParser returns a transcript parser that knows this CLI's flags.
func newParser() *transcript.Parser {
	return transcript.NewParser(transcript.WithInfoFlags(infoFlags))
}

// readLastRecords returns the last n records of the latest transcript.
func readLastRecords(n int) ([]transcript.Record, error) {
	path, err := transcript.LatestLogPath()
	if err != nil {
		return nil, err
	}
	return newParser().LastN(path, n)
}

// noFixMessage is printed when the model answers None.
const noFixMessage = "Unable to fix the command or no fix needed."

// previousCommandsContext builds the LLM context from the last n records. A
// missing or unreadable transcript yields an empty context.
func previousCommandsContext(n int) string {
	recs, err := lastRecords(n)
	if err != nil {
		logger.Debug("no transcript context", zap.Error(err))
		return ""
	}
	logger.Debug("transcript context", zap.Int("records", len(recs)))
	return perception.BuildContext(recs)
}

// runFix asks the model for a corrected command, confirms it with the user and
// runs it.
func runFix(cmd *cobra.Command, cfg *config.Config, n int) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := uuid.NewString()
	ctx = perception.WithRequestID(ctx, requestID)

	prompt := perception.BuildPrompt(previousCommandsContext(n))

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	suggestion, ok, err := client.Suggest(ctx, prompt)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if !ok {
		fmt.Fprintln(stderr, noFixMessage)
		return nil
	}

	// Suggestion and hint share stderr so they cannot interleave with stdout.
	fmt.Fprintf(stderr, "%s %s", suggestion, StylesFor(stderr).confirmPrompt())

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		logger.Debug("confirmation aborted", zap.Error(err))
		return nil
	}
	if strings.TrimSpace(line) != "" {
		logger.Debug("suggestion declined", zap.String("input", strings.TrimSpace(line)))
		return nil
	}
	fmt.Fprintln(stderr)

	return execute(ctx, cmd, suggestion, requestID)
}

// execute runs the accepted suggestion and converts a non-zero exit status
// into an exitCodeError.
func execute(ctx context.Context, cmd *cobra.Command, script, requestID string) error {
	// The terminal delivers Ctrl+C to the child directly; wtf waits for it.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	executor := newExecutor()
	executor.SetAuditCallback(tactile.LogAudit)

	result, err := executor.Execute(ctx, tactile.Command{
		Script:    script,
		Stdin:     cmd.InOrStdin(),
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		RequestID: requestID,
	})
	if err != nil {
		return err
	}
	if result.Error != "" {
		return fmt.Errorf("failed to run command: %s", result.Error)
	}
	logger.Debug("suggestion executed",
		zap.String("request_id", requestID),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration))

	if result.ExitCode != 0 {
		return &exitCodeError{code: result.ExitCode}
	}
	return nil
}
