package promo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for local discount-codes files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a file-based discount-codes loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promo-loader").Logger(),
	}
}

// Load reads a discount-codes file from the local file system.
func (l *fileLoader) Load(ctx context.Context, path string) (map[string]int, error) {
	l.logger.Info().Str("file", path).Msg("loading discount codes file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open discount codes file")
		return nil, fmt.Errorf("failed to open discount codes file %s: %w", path, err)
	}
	defer file.Close()

	codes, err := parseCodes(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to parse discount codes file")
		return nil, fmt.Errorf("failed to parse discount codes file %s: %w", path, err)
	}

	l.logger.Info().Str("file", path).Int("codes_loaded", len(codes)).Msg("discount codes file loaded")

	return codes, nil
}

// parseCodes reads CODE=PCT lines from r. Blank lines and '#' comments are
// skipped; a malformed line aborts the load.
func parseCodes(r io.Reader) (map[string]int, error) {
	codes := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, pctStr, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %d: expected CODE=PCT, got %q", lineNo, line)
		}

		pct, err := strconv.Atoi(strings.TrimSpace(pctStr))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid percentage %q: %w", lineNo, pctStr, err)
		}
		if pct < 1 || pct > 100 {
			return nil, fmt.Errorf("line %d: percentage %d out of range", lineNo, pct)
		}

		codes[strings.ToUpper(strings.TrimSpace(code))] = pct
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading codes: %w", err)
	}

	return codes, nil
}
