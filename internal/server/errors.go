// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	ErrReadingTLSKey     = errors.New("error reading TLS private key")
	ErrReadingTLSCert    = errors.New("error reading TLS certificate")
	ErrNoPEMBlock        = errors.New("no PEM block found in TLS private key")
	ErrDecryptingTLSKey  = errors.New("error decrypting TLS private key")
	ErrLoadingTLSKeyPair = errors.New("error loading TLS key pair")
)
