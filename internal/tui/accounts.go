package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

type accountsLoadedMsg struct {
	accounts []ledger.Account
	err      error
}

type accountListModel struct {
	accounts []ledger.Account
	cursor   int
	loading  bool
	err      error
	width    int
	height   int
}

func (m *accountListModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		accounts, err := c.ListAccounts(context.Background(), "", true)
		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func (m accountListModel) update(msg tea.Msg) (accountListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		m.accounts = msg.accounts
		m.err = msg.err
		if m.cursor >= len(m.accounts) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.accounts)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *accountListModel) selectedID() string {
	if m.cursor >= 0 && m.cursor < len(m.accounts) {
		return m.accounts[m.cursor].ID
	}
	return ""
}

func (m *accountListModel) view() string {
	if m.loading {
		return "Loading accounts..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.accounts) == 0 {
		return dimStyle.Render("No accounts found.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Chart of Accounts"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-6s %-30s %-10s %14s %s", "CODE", "NAME", "TYPE", "OPENING", "STATUS")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 4
	if maxRows < 1 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.accounts) && i < start+maxRows; i++ {
		a := m.accounts[i]
		name := a.Name
		if len(name) > 28 {
			name = name[:28] + ".."
		}
		status := ""
		if a.Disabled {
			status = "disabled"
		}
		line := fmt.Sprintf("  %-6s %-30s %-10s %14s %s",
			a.Code, name, a.Type, a.OpeningBalance.StringFixed(2), status)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d accounts", len(m.accounts)))
	return b.String()
}
