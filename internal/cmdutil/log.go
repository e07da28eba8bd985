package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// Log formats accepted by NewLogger.
const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// NewLogger builds the process logger. Components scope it with
// .With("module", ...).
func NewLogger(w io.Writer, format, level string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := []log.Option{log.LevelOption(lvl), log.ColorOption(false)}
	switch strings.ToLower(format) {
	case LogFormatPlain, "":
	case LogFormatJSON:
		opts = append(opts, log.OutputJSONOption())
	default:
		return nil, fmt.Errorf("log format must be %q or %q, got %q", LogFormatPlain, LogFormatJSON, format)
	}
	return log.NewLogger(w, opts...), nil
}
