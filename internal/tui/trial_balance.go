package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

type trialBalanceLoadedMsg struct {
	rows []ledger.TrialBalanceRow
	err  error
}

type trialBalanceModel struct {
	rows    []ledger.TrialBalanceRow
	loading bool
	err     error
	width   int
	height  int
}

func (m *trialBalanceModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		rows, err := c.TrialBalance(context.Background())
		return trialBalanceLoadedMsg{rows: rows, err: err}
	}
}

func (m trialBalanceModel) update(msg tea.Msg) (trialBalanceModel, tea.Cmd) {
	if msg, ok := msg.(trialBalanceLoadedMsg); ok {
		m.loading = false
		m.rows = msg.rows
		m.err = msg.err
	}
	return m, nil
}

func (m *trialBalanceModel) view() string {
	if m.loading {
		return "Loading trial balance..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.rows) == 0 {
		return dimStyle.Render("No balances to report.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Trial Balance"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-6s %-30s %-10s %14s %14s", "CODE", "ACCOUNT", "TYPE", "DEBIT", "CREDIT")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range m.rows {
		name := row.AccountName
		if len(name) > 28 {
			name = name[:28] + ".."
		}
		b.WriteString(fmt.Sprintf("  %-6s %-30s %-10s %14s %14s\n",
			row.AccountCode, name, row.AccountType,
			row.Debit.StringFixed(2), row.Credit.StringFixed(2)))
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	b.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", 80)))
	totalLine := fmt.Sprintf("  %-6s %-30s %-10s %14s %14s",
		"", "TOTAL", "", totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	if totalDebit.Equal(totalCredit) {
		b.WriteString(successStyle.Render(totalLine))
	} else {
		b.WriteString(errorStyle.Render(totalLine))
	}
	return b.String()
}
