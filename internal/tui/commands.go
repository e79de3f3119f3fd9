package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/eigen-library/models"
)

const statusTimeout = 3 * time.Second

func (m model) cmdLoadBooks() tea.Cmd {
	ctx, serverAdapter := m.ctx, m.adapter
	return func() tea.Msg {
		books, err := serverAdapter.ListBooks(ctx)
		return booksLoadedMsg{books: books, err: err}
	}
}

func (m model) cmdLoadMembers() tea.Cmd {
	ctx, serverAdapter := m.ctx, m.adapter
	return func() tea.Msg {
		members, err := serverAdapter.ListMembers(ctx)
		return membersLoadedMsg{members: members, err: err}
	}
}

func (m model) cmdSubmit(a action, memberCode, bookCode string) tea.Cmd {
	ctx, serverAdapter := m.ctx, m.adapter
	return func() tea.Msg {
		if a == returnAction {
			result, err := serverAdapter.Return(ctx, models.ReturnRequest{MemberCode: memberCode, BookCode: bookCode})
			if err != nil {
				return submitDoneMsg{err: err}
			}

			status := fmt.Sprintf("%s returned %s", result.Borrowing.MemberCode, result.Borrowing.BookCode)
			if result.Late && result.PenaltyUntil != nil {
				status += ", returned late: penalized until " + result.PenaltyUntil.Format(time.DateTime)
			}
			return submitDoneMsg{status: status}
		}

		borrowing, err := serverAdapter.Borrow(ctx, models.BorrowRequest{MemberCode: memberCode, BookCode: bookCode})
		if err != nil {
			return submitDoneMsg{err: err}
		}
		return submitDoneMsg{status: fmt.Sprintf("%s borrowed %s", borrowing.MemberCode, borrowing.BookCode)}
	}
}

func (m model) cmdCopy(code string) tea.Cmd {
	copyFn := m.copy
	return func() tea.Msg {
		if err := copyFn(code); err != nil {
			return copiedMsg{code: code, err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{code: code}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
