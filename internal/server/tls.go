package server

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/MKhiriev/eigen-library/internal/config"
)

// BuildTLSConfig loads the PEM private key and certificate named in cfg.
// A legacy encrypted key ("Proc-Type: 4,ENCRYPTED") is decrypted with
// cfg.KeyPassphrase.
func BuildTLSConfig(cfg config.TLS) (*tls.Config, error) {
	keyPEM, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingTLSKey, err)
	}

	certPEM, err := os.ReadFile(cfg.CertFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingTLSCert, err)
	}

	if cfg.KeyPassphrase != "" {
		keyPEM, err = decryptKey(keyPEM, cfg.KeyPassphrase)
		if err != nil {
			return nil, err
		}
	}

	certificate, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadingTLSKeyPair, err)
	}

	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{certificate},
	}, nil
}

func decryptKey(keyPEM []byte, passphrase string) ([]byte, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, ErrNoPEMBlock
	}

	//nolint:staticcheck // openssl still emits legacy encrypted PEM keys
	if !x509.IsEncryptedPEMBlock(block) {
		return keyPEM, nil
	}

	//nolint:staticcheck
	der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptingTLSKey, err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
}
