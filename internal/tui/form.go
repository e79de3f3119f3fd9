package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type action int

const (
	borrowAction action = iota
	returnAction
)

func (a action) String() string {
	if a == returnAction {
		return "Return a book"
	}
	return "Borrow a book"
}

const (
	memberField = iota
	bookField
)

// formModel collects the member and book codes of a borrow or a return.
type formModel struct {
	action     action
	inputs     []textinput.Model
	focus      int
	submitting bool
	err        string
}

// newFormModel prefills the codes taken from the current selection and
// focuses the first empty field.
func newFormModel(a action, memberCode, bookCode string) formModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 20
		inputs[i].CharLimit = 32
	}
	inputs[memberField].Placeholder = "M001"
	inputs[memberField].SetValue(memberCode)
	inputs[bookField].Placeholder = "JK-45"
	inputs[bookField].SetValue(bookCode)

	m := formModel{action: a, inputs: inputs}
	if memberCode != "" && bookCode == "" {
		m.focus = bookField
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) memberCode() string {
	return strings.TrimSpace(m.inputs[memberField].Value())
}

func (m formModel) bookCode() string {
	return strings.TrimSpace(m.inputs[bookField].Value())
}

func (m *formModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m formModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.action.String()))
	b.WriteString("\n\n")
	b.WriteString("Member: [" + m.inputs[memberField].View() + "]\n")
	b.WriteString("Book:   [" + m.inputs[bookField].View() + "]\n\n")

	if m.submitting {
		b.WriteString("Sending...\n\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render("Error: "+m.err) + "\n\n")
	}

	b.WriteString(helpStyle.Render("esc cancel  tab next field  enter submit"))
	return b.String()
}
