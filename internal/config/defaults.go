package config

import "time"

const (
	defaultPort                 = "3000"
	defaultHost                 = "0.0.0.0"
	defaultTLSKeyFile           = "/home/cert/private.key"
	defaultTLSCertFile          = "/home/cert/certificate.crt"
	defaultRequestTimeout       = 30 * time.Second
	defaultVersion              = "1.5"
	defaultMaxBorrowedBooks     = 2
	defaultBorrowPeriod         = 7 * 24 * time.Hour
	defaultPenaltyDuration      = 3 * 24 * time.Hour
	defaultPenaltySweepInterval = time.Hour
	defaultDSN                  = "file:eigen.db?_foreign_keys=on"
)

var defaultAllowedOrigins = []string{"*"}

func (cfg *StructuredConfig) applyDefaults() {
	s := &cfg.Server
	setDefault(&s.Port, defaultPort)
	setDefault(&s.Host, defaultHost)
	setDefault(&s.Mode, ModeProduction)
	setDefault(&s.TLS.KeyFile, defaultTLSKeyFile)
	setDefault(&s.TLS.CertFile, defaultTLSCertFile)
	setDefault(&s.RequestTimeout, defaultRequestTimeout)
	if len(s.CORS.AllowedOrigins) == 0 {
		s.CORS.AllowedOrigins = defaultAllowedOrigins
	}

	setDefault(&cfg.App.Version, defaultVersion)
	setDefault(&cfg.App.MaxBorrowedBooks, defaultMaxBorrowedBooks)
	setDefault(&cfg.App.BorrowPeriod, defaultBorrowPeriod)
	setDefault(&cfg.App.PenaltyDuration, defaultPenaltyDuration)

	setDefault(&cfg.Storage.DB.DSN, defaultDSN)
	setDefault(&cfg.Workers.PenaltySweepInterval, defaultPenaltySweepInterval)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
