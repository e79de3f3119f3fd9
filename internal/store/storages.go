// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
)

// Storages groups every repository backed by one database.
type Storages struct {
	Transactor          Transactor
	Pinger              Pinger
	BookRepository      BookRepository
	MemberRepository    MemberRepository
	BorrowingRepository BorrowingRepository

	db *DB
}

// NewStorages connects to the database configured in cfg, applies the
// migrations and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewDB(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating database connection: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return newStorages(db, logger), nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Transactor:          db,
		Pinger:              db,
		BookRepository:      NewBookRepository(db, logger),
		MemberRepository:    NewMemberRepository(db, logger),
		BorrowingRepository: NewBorrowingRepository(db, logger),
		db:                  db,
	}
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
