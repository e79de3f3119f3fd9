package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/eigen-library/internal/adapter"
)

type tab int

const (
	booksTab tab = iota
	membersTab
	tabCount
)

func (t tab) String() string {
	if t == membersTab {
		return "Members"
	}
	return "Books"
}

// footerHeight is the number of lines under the list: status and help.
const footerHeight = 4

type model struct {
	ctx      context.Context
	adapter  adapter.ServerAdapter
	humanize func(error) string
	copy     func(string) error

	tab            tab
	lists          [tabCount]list.Model
	loadingBooks   bool
	loadingMembers bool
	spinner        spinner.Model

	form     formModel
	formOpen bool

	status string
	errMsg string
}

func newModel(ctx context.Context, serverAdapter adapter.ServerAdapter, humanize func(error) string) model {
	if humanize == nil {
		humanize = func(err error) string { return err.Error() }
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return model{
		ctx:            ctx,
		adapter:        serverAdapter,
		humanize:       humanize,
		copy:           clipboard.WriteAll,
		lists:          [tabCount]list.Model{newList(booksTab), newList(membersTab)},
		loadingBooks:   true,
		loadingMembers: true,
		spinner:        s,
	}
}

func newList(t tab) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = t.String()
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadBooks(), m.cmdLoadMembers())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		for i := range m.lists {
			m.lists[i].SetSize(msg.Width-h, max(msg.Height-v-footerHeight, 1))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case booksLoadedMsg:
		m.loadingBooks = false
		if msg.err != nil {
			m.errMsg = m.humanize(msg.err)
			return m, nil
		}
		cmd := m.lists[booksTab].SetItems(bookItems(msg.books))
		return m, cmd

	case membersLoadedMsg:
		m.loadingMembers = false
		if msg.err != nil {
			m.errMsg = m.humanize(msg.err)
			return m, nil
		}
		cmd := m.lists[membersTab].SetItems(memberItems(msg.members))
		return m, cmd

	case submitDoneMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.err = m.humanize(msg.err)
			return m, nil
		}
		m.formOpen = false
		m.status = msg.status
		cmd := m.reload(cmdClearStatus())
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = m.humanize(msg.err)
			return m, nil
		}
		m.status = "copied " + msg.code
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.forceQuit) {
		return m, tea.Quit
	}

	if m.errMsg != "" {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	}

	if m.formOpen {
		return m.updateForm(msg)
	}

	if !m.lists[m.tab].SettingFilter() {
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.tab):
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case key.Matches(msg, keys.borrow):
			return m.openForm(borrowAction)
		case key.Matches(msg, keys.giveBack):
			return m.openForm(returnAction)
		case key.Matches(msg, keys.refresh):
			cmd := m.reload()
			return m, cmd
		case key.Matches(msg, keys.copy):
			code, ok := m.selectedCode()
			if !ok {
				m.status = "nothing to copy"
				return m, cmdClearStatus()
			}
			return m, m.cmdCopy(code)
		}
	}

	var cmd tea.Cmd
	m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
	return m, cmd
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.formOpen = false
		return m, nil
	case key.Matches(msg, keys.tab, keys.down):
		m.form.moveFocus(1)
		return m, nil
	case key.Matches(msg, keys.backtab, keys.up):
		m.form.moveFocus(-1)
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.form.submitting {
			return m, nil
		}
		memberCode, bookCode := m.form.memberCode(), m.form.bookCode()
		if memberCode == "" || bookCode == "" {
			m.form.err = "member and book codes are required"
			return m, nil
		}
		m.form.submitting = true
		m.form.err = ""
		return m, m.cmdSubmit(m.form.action, memberCode, bookCode)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// openForm prefills the form from the selected row: a book code on the books
// tab, a member code on the members tab.
func (m model) openForm(a action) (tea.Model, tea.Cmd) {
	var memberCode, bookCode string
	switch item := m.lists[m.tab].SelectedItem().(type) {
	case bookItem:
		bookCode = item.book.Code
	case memberItem:
		memberCode = item.member.Code
	}

	m.form = newFormModel(a, memberCode, bookCode)
	m.formOpen = true
	return m, nil
}

func (m model) selectedCode() (string, bool) {
	switch item := m.lists[m.tab].SelectedItem().(type) {
	case bookItem:
		return item.book.Code, true
	case memberItem:
		return item.member.Code, true
	}
	return "", false
}

func (m model) loading() bool {
	return m.loadingBooks || m.loadingMembers
}

// reload refetches both lists, batched with extra.
func (m *model) reload(extra ...tea.Cmd) tea.Cmd {
	m.loadingBooks, m.loadingMembers = true, true
	cmds := append([]tea.Cmd{m.spinner.Tick, m.cmdLoadBooks(), m.cmdLoadMembers()}, extra...)
	return tea.Batch(cmds...)
}

func (m model) View() string {
	if m.errMsg != "" {
		return appStyle.Render(errorOverlayModel{message: m.errMsg}.View())
	}
	if m.formOpen {
		return appStyle.Render(m.form.View())
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Eigen library"))
	b.WriteString("  ")
	for t := range tabCount {
		style := tabStyle
		if t == m.tab {
			style = activeTabStyle
		}
		b.WriteString(style.Render(t.String()))
	}
	if m.loading() {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.lists[m.tab].View())
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch  b borrow  r return  c copy code  s refresh  / filter  q quit"))

	return appStyle.Render(b.String())
}
