package migrations

import (
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/MKhiriev/eigen-library/internal/logger"
)

// gooseLogger routes goose output through the structured logger instead of
// the standard library log package.
type gooseLogger struct {
	log *logger.Logger
}

var _ goose.Logger = (*gooseLogger)(nil)

func newGooseLogger(log *logger.Logger) goose.Logger {
	if log == nil {
		return goose.NopLogger()
	}
	return &gooseLogger{log: log.Named("migrations")}
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Fatal().Msgf(strings.TrimSuffix(format, "\n"), v...)
}
