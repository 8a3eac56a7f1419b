package dispatch

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
)

// execOpener opens intent URLs through the host's URL handler command
// (xdg-open on Linux, open on macOS).
type execOpener struct {
	command string
	logger  zerolog.Logger
}

// NewExecOpener creates a URL opener backed by the host's handler command.
// The opener reports CanOpen false when no handler command exists, which
// surfaces downstream as a dispatch-unavailable fallback.
func NewExecOpener(logger zerolog.Logger) URLOpener {
	command := "xdg-open"
	if runtime.GOOS == "darwin" {
		command = "open"
	}

	return &execOpener{
		command: command,
		logger:  logger.With().Str("component", "url-opener").Logger(),
	}
}

// CanOpen reports whether the handler command is present on this host.
func (o *execOpener) CanOpen(ctx context.Context, rawURL string) bool {
	_, err := exec.LookPath(o.command)
	return err == nil
}

// Open hands the URL to the handler command.
func (o *execOpener) Open(ctx context.Context, rawURL string) error {
	cmd := exec.CommandContext(ctx, o.command, rawURL)
	if err := cmd.Run(); err != nil {
		o.logger.Error().Err(err).Str("command", o.command).Msg("failed to open url")
		return fmt.Errorf("failed to open url with %s: %w", o.command, err)
	}

	o.logger.Debug().Str("command", o.command).Msg("url opened")

	return nil
}
