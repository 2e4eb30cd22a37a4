package ui

import (
	"fmt"
	"strings"
	"time"

	"addrscan/pkg/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("7"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// coins formats a satoshi amount with all eight decimals.
func coins(sat int64) string {
	return decimal.New(sat, -8).StringFixed(8)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func RenderAddressInfo(info *models.AddressInfo) string {
	rows := []string{
		titleStyle.Render(info.Address),
		row("Balance", coins(info.BalanceSat)),
		row("Total received", coins(info.TotalReceivedSat)),
		row("Total sent", coins(info.TotalSentSat)),
		row("Unconfirmed balance", coins(info.UnconfirmedBalanceSat)),
		row("Transactions", fmt.Sprintf("%d confirmed, %d unconfirmed", info.TxAppearances, info.UnconfirmedTxAppearance)),
	}
	for _, txid := range info.Transactions {
		rows = append(rows, mutedStyle.Render("  "+txid))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func RenderUTXOs(address string, utxos []models.UTXO) string {
	var total int64
	rows := []string{titleStyle.Render(address)}
	for _, u := range utxos {
		total += u.Satoshis
		rows = append(rows, fmt.Sprintf("%s:%d  %s  %s",
			u.Txid, u.Vout,
			valueStyle.Render(coins(u.Satoshis)),
			mutedStyle.Render(fmt.Sprintf("%d conf", u.Confirmations))))
	}
	rows = append(rows, row(fmt.Sprintf("%d outputs", len(utxos)), coins(total)))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func RenderTransaction(tx *models.Transaction) string {
	rows := []string{
		titleStyle.Render(tx.Txid),
		row("Confirmations", fmt.Sprintf("%d", tx.ConfirmationCount())),
	}
	if tx.Time != nil {
		rows = append(rows, row("Time", time.Unix(*tx.Time, 0).UTC().Format(time.RFC3339)))
	}

	rows = append(rows, titleStyle.Render("Inputs"))
	for _, in := range tx.Vin {
		if !in.HasPrevOut() {
			rows = append(rows, "  coinbase "+mutedStyle.Render(in.Coinbase))
			continue
		}
		rows = append(rows, fmt.Sprintf("  %s:%d", in.Txid, in.Vout))
	}

	rows = append(rows, titleStyle.Render("Outputs"))
	for _, out := range tx.Vout {
		var addresses, kind string
		if out.ScriptPubKey != nil {
			addresses = strings.Join(out.ScriptPubKey.Addresses, ",")
			kind = out.ScriptPubKey.Type
		}
		rows = append(rows, fmt.Sprintf("  %d  %s  %s %s",
			out.N, valueStyle.Render(coins(int64(out.Value))), addresses, mutedStyle.Render(kind)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func RenderNodeInfo(info *models.NodeInfo) string {
	network := "mainnet"
	if info.TestNet {
		network = "testnet"
	}
	rows := []string{
		titleStyle.Render("Node"),
		row("Version", fmt.Sprintf("%d", info.Version)),
		row("Protocol", fmt.Sprintf("%d", info.ProtocolVersion)),
		row("Network", network),
		row("Blocks", fmt.Sprintf("%d", info.Blocks)),
		row("Connections", fmt.Sprintf("%d", info.Connections)),
		row("Difficulty", fmt.Sprintf("%g", info.Difficulty)),
	}
	if info.Errors != "" {
		rows = append(rows, row("Errors", info.Errors))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
