// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Server modes accepted in the MODE variable.
const (
	ModeDevelopment = "DEVELOPMENT"
	ModeProduction  = "PRODUCTION"
)

// StructuredConfig is the merged configuration of the server binary.
type StructuredConfig struct {
	// Server carries the listener settings. Its variables are not prefixed
	// (PORT, HOST, HTTPS_MODE, MODE).
	Server Server

	App App `envPrefix:"APP_"`

	Storage Storage `envPrefix:"STORAGE_"`

	Workers Workers `envPrefix:"WORKERS_"`

	Adapter Adapter `envPrefix:"ADAPTER_"`

	JSONFilePath string `env:"CONFIG"`
}

type Server struct {
	Port string `env:"PORT"`

	Host string `env:"HOST"`

	// HTTPSMode switches the listener to TLS. Any numeric non-zero value enables it.
	HTTPSMode NumericBool `env:"HTTPS_MODE"`

	// Mode is DEVELOPMENT or PRODUCTION.
	Mode string `env:"MODE"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	TLS TLS `envPrefix:"TLS_"`

	CORS CORS `envPrefix:"CORS_"`
}

// Address returns host:port for net.Listen.
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// IsDevelopment reports whether MODE is DEVELOPMENT.
func (s Server) IsDevelopment() bool {
	return s.Mode == ModeDevelopment
}

type TLS struct {
	KeyFile string `env:"KEY_FILE"`

	CertFile string `env:"CERT_FILE"`

	// KeyPassphrase decrypts an encrypted PEM private key. Empty means the key is not encrypted.
	KeyPassphrase string `env:"KEY_PASSPHRASE"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

type App struct {
	Version string `env:"VERSION"`

	// MaxBorrowedBooks is how many books a member may hold at once.
	MaxBorrowedBooks int `env:"MAX_BORROWED_BOOKS"`

	// BorrowPeriod is how long a book may be kept before the return is late.
	BorrowPeriod time.Duration `env:"BORROW_PERIOD"`

	// PenaltyDuration is how long a late member is barred from borrowing.
	PenaltyDuration time.Duration `env:"PENALTY_DURATION"`
}

type Storage struct {
	DB DB `envPrefix:"DB_"`
}

type DB struct {
	DSN string `env:"DATABASE_URI"`
}

type Workers struct {
	PenaltySweepInterval time.Duration `env:"PENALTY_SWEEP_INTERVAL"`
}

// Adapter configures the CLI client's connection to the server.
type Adapter struct {
	HTTPAddress string `env:"ADDRESS"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads the server configuration from the .env file,
// environment, command-line flags and the optional JSON file, applies
// defaults and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(dotEnvFile).
		withEnv().
		withFlags(flagArgs()).
		withJSON().
		build()
}
