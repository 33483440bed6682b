package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

type balanceSheetLoadedMsg struct {
	bs  *ledger.BalanceSheet
	err error
}

type balanceSheetModel struct {
	bs      *ledger.BalanceSheet
	loading bool
	err     error
	width   int
	height  int
}

func (m *balanceSheetModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		bs, err := c.BalanceSheet(context.Background())
		return balanceSheetLoadedMsg{bs: bs, err: err}
	}
}

func (m balanceSheetModel) update(msg tea.Msg) (balanceSheetModel, tea.Cmd) {
	if msg, ok := msg.(balanceSheetLoadedMsg); ok {
		m.loading = false
		m.bs = msg.bs
		m.err = msg.err
	}
	return m, nil
}

func (m *balanceSheetModel) view() string {
	if m.loading {
		return "Loading balance sheet..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.bs == nil {
		return dimStyle.Render("No data available.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Balance Sheet"))
	b.WriteString("\n")

	renderSection := func(title string, lines []ledger.ReportLine, total string) {
		b.WriteString(fmt.Sprintf("  %s\n", headerStyle.Render(title)))
		if len(lines) == 0 {
			b.WriteString(dimStyle.Render("    (no entries)") + "\n")
		}
		for _, l := range lines {
			name := l.AccountName
			if len(name) > 30 {
				name = name[:28] + ".."
			}
			b.WriteString(fmt.Sprintf("    %-6s %-32s %14s\n", l.AccountCode, name, l.Amount.StringFixed(2)))
		}
		b.WriteString(fmt.Sprintf("    %s\n", strings.Repeat("─", 56)))
		b.WriteString(fmt.Sprintf("    %-39s %14s\n\n", "Total "+title, total))
	}

	renderSection("Assets", m.bs.Assets, m.bs.TotalAssets.StringFixed(2))
	renderSection("Liabilities", m.bs.Liabilities, m.bs.TotalLiabilities.StringFixed(2))
	renderSection("Equity", m.bs.Equity, m.bs.TotalEquity.StringFixed(2))

	liabPlusEquity := m.bs.TotalLiabilities.Add(m.bs.TotalEquity)
	b.WriteString(fmt.Sprintf("    %-39s %14s\n", "Liabilities + Equity", liabPlusEquity.StringFixed(2)))
	return b.String()
}
