package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/khata-dev/khata/internal/client"
	"github.com/khata-dev/khata/internal/ledger"
)

type voucherDetailLoadedMsg struct {
	voucher *ledger.Voucher
	err     error
}

type voucherDetailModel struct {
	voucher *ledger.Voucher
	loading bool
	err     error
	width   int
}

func (m *voucherDetailModel) init(c *client.Client, id string) tea.Cmd {
	m.loading = true
	m.voucher = nil
	return func() tea.Msg {
		voucher, err := c.GetVoucher(context.Background(), id)
		return voucherDetailLoadedMsg{voucher: voucher, err: err}
	}
}

func (m voucherDetailModel) update(msg tea.Msg) (voucherDetailModel, tea.Cmd) {
	if msg, ok := msg.(voucherDetailLoadedMsg); ok {
		m.loading = false
		m.voucher = msg.voucher
		m.err = msg.err
	}
	return m, nil
}

func (m *voucherDetailModel) view() string {
	if m.loading {
		return "Loading voucher..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.voucher == nil {
		return dimStyle.Render("No voucher selected.")
	}

	v := m.voucher
	var b strings.Builder
	b.WriteString(titleStyle.Render("Voucher " + v.VoucherNo))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Type:      %s\n", v.Type))
	b.WriteString(fmt.Sprintf("  Date:      %s / BS %s\n", v.Date.Format("2006-01-02"), v.DateBS.String()))
	b.WriteString(fmt.Sprintf("  Narration: %s\n", v.Narration))
	b.WriteString(fmt.Sprintf("  Status:    %s\n", v.Status))
	if v.Party != "" {
		b.WriteString(fmt.Sprintf("  Party:     %s (PAN %s)\n", v.Party, v.PartyPAN))
		b.WriteString(fmt.Sprintf("  Subtotal:  %s  VAT: %s  Total: %s\n",
			v.Subtotal.StringFixed(2), v.VATAmount.StringFixed(2), v.Total.StringFixed(2)))
	}
	b.WriteString("\n")

	header := fmt.Sprintf("  %-4s %-38s %14s  %s", "", "ACCOUNT", "AMOUNT", "PARTICULARS")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	for _, e := range v.Entries {
		if e.Debit.IsPositive() {
			b.WriteString(fmt.Sprintf("  %-4s %-38s %14s  %s\n", "DR", e.AccountID, e.Debit.StringFixed(2), e.Particulars))
		} else {
			b.WriteString(fmt.Sprintf("  %-4s %-38s %14s  %s\n", "CR", e.AccountID, e.Credit.StringFixed(2), e.Particulars))
		}
	}
	return b.String()
}
