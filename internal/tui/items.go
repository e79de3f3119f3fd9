package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/MKhiriev/eigen-library/models"
)

type bookItem struct {
	book models.Book
}

var _ list.DefaultItem = bookItem{}

func (i bookItem) Title() string {
	return fmt.Sprintf("%-8s %s", i.book.Code, i.book.Title)
}

func (i bookItem) Description() string {
	return fmt.Sprintf("%s, %d of %d available", i.book.Author, i.book.Available, i.book.Stock)
}

func (i bookItem) FilterValue() string {
	return i.book.Code + " " + i.book.Title + " " + i.book.Author
}

type memberItem struct {
	member models.Member
}

var _ list.DefaultItem = memberItem{}

func (i memberItem) Title() string {
	return fmt.Sprintf("%-8s %s", i.member.Code, i.member.Name)
}

func (i memberItem) Description() string {
	desc := fmt.Sprintf("holds %d book(s)", i.member.BorrowedBooks)
	if i.member.Penalized && i.member.PenaltyUntil != nil {
		desc += ", penalized until " + i.member.PenaltyUntil.Format(time.DateTime)
	}
	return desc
}

func (i memberItem) FilterValue() string {
	return i.member.Code + " " + i.member.Name
}

func bookItems(books []models.Book) []list.Item {
	items := make([]list.Item, 0, len(books))
	for _, b := range books {
		items = append(items, bookItem{book: b})
	}
	return items
}

func memberItems(members []models.Member) []list.Item {
	items := make([]list.Item, 0, len(members))
	for _, m := range members {
		items = append(items, memberItem{member: m})
	}
	return items
}
