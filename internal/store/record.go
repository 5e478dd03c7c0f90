package store

import (
	"time"

	"ledgerlens/ledgerlens/internal/models"

	"github.com/shopspring/decimal"
)

// transactionRow is the on-disk form of a transaction.
type transactionRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"Type"`
	Balance     string `csv:"Balance"`
	Sender      string `csv:"Sender"`
	Reference   string `csv:"Reference"`
}

func (r transactionRow) cells() []string {
	return []string{r.Date, r.Description, r.Amount, r.Type, r.Balance, r.Sender, r.Reference}
}

func rowFromCells(cells []string) transactionRow {
	get := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return transactionRow{
		Date:        get(0),
		Description: get(1),
		Amount:      get(2),
		Type:        get(3),
		Balance:     get(4),
		Sender:      get(5),
		Reference:   get(6),
	}
}

func toRow(tx models.Transaction) transactionRow {
	row := transactionRow{
		Date:        tx.FormattedDate(),
		Description: tx.Description,
		Amount:      formatDecimal(tx.Amount),
		Type:        string(tx.Type),
		Sender:      tx.Sender,
		Reference:   tx.Reference,
	}
	if tx.Balance.Valid {
		row.Balance = formatDecimal(tx.Balance.Decimal)
	}
	return row
}

// formatDecimal prints two decimals unless that would round the value.
func formatDecimal(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

// toTransaction converts a stored row. A non-empty reason means the row
// cannot have been written by this package.
func toTransaction(row transactionRow) (models.Transaction, string) {
	var tx models.Transaction

	if row.Date != "" {
		date, err := time.Parse(models.DateLayout, row.Date)
		if err != nil {
			return tx, "invalid Date " + row.Date
		}
		tx.Date = date
	}

	amount, err := models.ParseAmount(row.Amount)
	if err != nil {
		return tx, "invalid Amount " + row.Amount
	}
	tx.Amount = amount

	if row.Balance != "" {
		balance, err := decimal.NewFromString(row.Balance)
		if err != nil {
			return tx, "invalid Balance " + row.Balance
		}
		tx.Balance = decimal.NewNullDecimal(balance)
	}

	switch row.Type {
	case "":
		tx.Type = models.TypeForAmount(amount)
	case string(models.TypeCredit), string(models.TypeDebit):
		tx.Type = models.TransactionType(row.Type)
	default:
		return tx, "invalid Type " + row.Type
	}

	tx.Description = row.Description
	tx.Sender = row.Sender
	tx.Reference = row.Reference
	return tx, ""
}
