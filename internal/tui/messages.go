package tui

import "github.com/MKhiriev/eigen-library/models"

type booksLoadedMsg struct {
	books []models.Book
	err   error
}

type membersLoadedMsg struct {
	members []models.Member
	err     error
}

type submitDoneMsg struct {
	status string
	err    error
}

type copiedMsg struct {
	code string
	err  error
}

type clearStatusMsg struct{}
