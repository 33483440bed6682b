// Package tui is a read-mostly terminal front end over the HTTP API: browse
// the chart of accounts, vouchers and the core reports. Posting vouchers
// stays on the CLI.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/khata-dev/khata/internal/client"
)

type mode int

const (
	modeAccountList mode = iota
	modeAccountDetail
	modeVoucherList
	modeVoucherDetail
	modeTrialBalance
	modeBalanceSheet
)

var tabModes = []mode{modeAccountList, modeVoucherList, modeTrialBalance, modeBalanceSheet}

func tabLabel(m mode) string {
	switch m {
	case modeAccountList:
		return "Accounts"
	case modeVoucherList:
		return "Vouchers"
	case modeTrialBalance:
		return "Trial Balance"
	case modeBalanceSheet:
		return "Balance Sheet"
	default:
		return ""
	}
}

type App struct {
	client        *client.Client
	mode          mode
	tabIndex      int
	width, height int

	accountList   accountListModel
	accountDetail accountDetailModel
	voucherList   voucherListModel
	voucherDetail voucherDetailModel
	trialBalance  trialBalanceModel
	balanceSheet  balanceSheetModel
}

func NewApp(c *client.Client) *App {
	return &App{
		client:   c,
		mode:     modeAccountList,
		tabIndex: 0,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.accountList.init(a.client),
		a.voucherList.init(a.client),
		a.trialBalance.init(a.client),
		a.balanceSheet.init(a.client),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.accountList.width = msg.Width
		a.accountList.height = msg.Height - 6
		a.voucherList.width = msg.Width
		a.voucherList.height = msg.Height - 6
		a.trialBalance.width = msg.Width
		a.trialBalance.height = msg.Height - 6
		a.balanceSheet.width = msg.Width
		a.balanceSheet.height = msg.Height - 6
		a.accountDetail.width = msg.Width
		a.accountDetail.height = msg.Height - 6
		a.voucherDetail.width = msg.Width
		return a, nil
	}

	// Loaded messages go to their owning sub-model regardless of the active
	// mode: Init fires every load concurrently.
	switch msg.(type) {
	case accountsLoadedMsg:
		var cmd tea.Cmd
		a.accountList, cmd = a.accountList.update(msg)
		return a, cmd
	case vouchersLoadedMsg:
		var cmd tea.Cmd
		a.voucherList, cmd = a.voucherList.update(msg)
		return a, cmd
	case trialBalanceLoadedMsg:
		var cmd tea.Cmd
		a.trialBalance, cmd = a.trialBalance.update(msg)
		return a, cmd
	case balanceSheetLoadedMsg:
		var cmd tea.Cmd
		a.balanceSheet, cmd = a.balanceSheet.update(msg)
		return a, cmd
	case accountDetailLoadedMsg:
		var cmd tea.Cmd
		a.accountDetail, cmd = a.accountDetail.update(msg)
		return a, cmd
	case voucherDetailLoadedMsg:
		var cmd tea.Cmd
		a.voucherDetail, cmd = a.voucherDetail.update(msg)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			return a, a.refreshTab()

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			return a, a.refreshTab()

		case key.Matches(msg, keys.Refresh):
			return a, a.refreshTab()

		case key.Matches(msg, keys.Escape):
			switch a.mode {
			case modeAccountDetail:
				a.mode = modeAccountList
			case modeVoucherDetail:
				a.mode = modeVoucherList
			}
			return a, nil

		case key.Matches(msg, keys.Enter):
			switch a.mode {
			case modeAccountList:
				if id := a.accountList.selectedID(); id != "" {
					a.mode = modeAccountDetail
					return a, a.accountDetail.init(a.client, id)
				}
				return a, nil
			case modeVoucherList:
				if id := a.voucherList.selectedID(); id != "" {
					a.mode = modeVoucherDetail
					return a, a.voucherDetail.init(a.client, id)
				}
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.mode {
	case modeAccountList:
		a.accountList, cmd = a.accountList.update(msg)
	case modeAccountDetail:
		a.accountDetail, cmd = a.accountDetail.update(msg)
	case modeVoucherList:
		a.voucherList, cmd = a.voucherList.update(msg)
	case modeVoucherDetail:
		a.voucherDetail, cmd = a.voucherDetail.update(msg)
	case modeTrialBalance:
		a.trialBalance, cmd = a.trialBalance.update(msg)
	case modeBalanceSheet:
		a.balanceSheet, cmd = a.balanceSheet.update(msg)
	}
	return a, cmd
}

func (a *App) refreshTab() tea.Cmd {
	switch a.mode {
	case modeAccountList:
		return a.accountList.init(a.client)
	case modeVoucherList:
		return a.voucherList.init(a.client)
	case modeTrialBalance:
		return a.trialBalance.init(a.client)
	case modeBalanceSheet:
		return a.balanceSheet.init(a.client)
	}
	return nil
}

func (a *App) View() string {
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	var content string
	switch a.mode {
	case modeAccountList:
		content = a.accountList.view()
	case modeAccountDetail:
		content = a.accountDetail.view()
	case modeVoucherList:
		content = a.voucherList.view()
	case modeVoucherDetail:
		content = a.voucherDetail.view()
	case modeTrialBalance:
		content = a.trialBalance.view()
	case modeBalanceSheet:
		content = a.balanceSheet.view()
	}

	helpText := dimStyle.Render("tab:switch  enter:open  esc:back  r:refresh  q:quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		content,
		"",
		helpText,
	)
}
