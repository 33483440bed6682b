package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

type accountDetailLoadedMsg struct {
	account *ledger.Account
	lines   []ledger.LedgerLine
	err     error
}

// accountDetailModel shows one account's ledger with running balances.
type accountDetailModel struct {
	account *ledger.Account
	lines   []ledger.LedgerLine
	loading bool
	err     error
	width   int
	height  int
}

func (m *accountDetailModel) init(c *client.Client, id string) tea.Cmd {
	m.loading = true
	m.account = nil
	m.lines = nil
	return func() tea.Msg {
		account, err := c.GetAccount(context.Background(), id)
		if err != nil {
			return accountDetailLoadedMsg{err: err}
		}
		lines, err := c.AccountLedger(context.Background(), id, "", "")
		return accountDetailLoadedMsg{account: account, lines: lines, err: err}
	}
}

func (m accountDetailModel) update(msg tea.Msg) (accountDetailModel, tea.Cmd) {
	if msg, ok := msg.(accountDetailLoadedMsg); ok {
		m.loading = false
		m.account = msg.account
		m.lines = msg.lines
		m.err = msg.err
	}
	return m, nil
}

func (m *accountDetailModel) view() string {
	if m.loading {
		return "Loading ledger..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.account == nil {
		return dimStyle.Render("No account selected.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s (%s)", m.account.Code, m.account.Name, m.account.Type)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Opening balance: %s\n\n", m.account.OpeningBalance.StringFixed(2)))

	if len(m.lines) == 0 {
		b.WriteString(dimStyle.Render("  No transactions."))
		return b.String()
	}

	header := fmt.Sprintf("  %-12s %-12s %-16s %12s %12s %12s",
		"DATE", "DATE (BS)", "VOUCHER", "DEBIT", "CREDIT", "BALANCE")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, l := range m.lines {
		b.WriteString(fmt.Sprintf("  %-12s %-12s %-16s %12s %12s %12s\n",
			l.Date.Format("2006-01-02"), l.DateBS.String(), l.VoucherNo,
			l.Debit.StringFixed(2), l.Credit.StringFixed(2), l.Balance.StringFixed(2)))
	}
	return b.String()
}
