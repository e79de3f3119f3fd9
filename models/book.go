// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Book is a catalogue entry. A book can have several physical copies (Stock);
// Available is Stock minus the copies currently lent out and is computed by
// the storage layer on read.
type Book struct {
	// Code is the unique shelf code of the book, e.g. "JK-45".
	Code string `json:"code" validate:"required,max=32"`

	Title string `json:"title" validate:"required,max=255"`

	Author string `json:"author" validate:"required,max=255"`

	// Stock is the total number of copies owned by the library.
	Stock int `json:"stock" validate:"gte=0"`

	// Available is the number of copies that are not borrowed right now.
	Available int `json:"available"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CreateBookRequest is the payload of POST /api/books.
type CreateBookRequest struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Stock  int    `json:"stock"`
}

// ToBook converts the request into a catalogue entry.
func (r CreateBookRequest) ToBook() Book {
	return Book{
		Code:   r.Code,
		Title:  r.Title,
		Author: r.Author,
		Stock:  r.Stock,
	}
}
