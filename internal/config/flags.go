// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

func flagArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// ParseFlags parses the server flags from args.
//
// Flags:
//
//	-a listen address in format [host]:[port]
//	-https-mode enable TLS (numeric, e.g. 1)
//	-mode DEVELOPMENT or PRODUCTION
//	-tls-key / -tls-cert PEM key and certificate paths
//	-tls-key-passphrase passphrase of an encrypted key
//	-cors-origins comma separated list of allowed origins
//	-d database DSN
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-borrowed-books, -borrow-period, -penalty-duration borrowing rules
//	-penalty-sweep-interval how often expired penalties are cleared
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	var serverAddress NetAddress
	var httpsMode NumericBool
	var mode, tlsKey, tlsCert, tlsPassphrase, corsOrigins string
	var databaseDSN, jsonConfigPath string
	var requestTimeout, borrowPeriod, penaltyDuration, sweepInterval time.Duration
	var maxBorrowed int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&httpsMode, "https-mode", "Serve over TLS when non-zero")
	fs.StringVar(&mode, "mode", "", "Server mode: DEVELOPMENT or PRODUCTION")
	fs.StringVar(&tlsKey, "tls-key", "", "TLS private key path")
	fs.StringVar(&tlsCert, "tls-cert", "", "TLS certificate path")
	fs.StringVar(&tlsPassphrase, "tls-key-passphrase", "", "TLS private key passphrase")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated allowed CORS origins")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&maxBorrowed, "max-borrowed-books", 0, "Books a member may hold at once")
	fs.DurationVar(&borrowPeriod, "borrow-period", 0, "Borrow period before a return is late (e.g., 168h)")
	fs.DurationVar(&penaltyDuration, "penalty-duration", 0, "Penalty for a late return (e.g., 72h)")
	fs.DurationVar(&sweepInterval, "penalty-sweep-interval", 0, "Expired penalty sweep interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	var port string
	if serverAddress.Port != 0 {
		port = strconv.Itoa(serverAddress.Port)
	}

	return &StructuredConfig{
		Server: Server{
			Port:           port,
			Host:           serverAddress.Host,
			HTTPSMode:      httpsMode,
			Mode:           mode,
			RequestTimeout: requestTimeout,
			TLS: TLS{
				KeyFile:       tlsKey,
				CertFile:      tlsCert,
				KeyPassphrase: tlsPassphrase,
			},
			CORS: CORS{
				AllowedOrigins: splitList(corsOrigins),
			},
		},
		App: App{
			MaxBorrowedBooks: maxBorrowed,
			BorrowPeriod:     borrowPeriod,
			PenaltyDuration:  penaltyDuration,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Workers: Workers{
			PenaltySweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
