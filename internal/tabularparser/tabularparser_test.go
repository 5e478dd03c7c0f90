package tabularparser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParse_SubstringColumnMapping(t *testing.T) {
	path := writeFile(t, "hdfc.csv", "Txn Date,desc,amt\n2024-04-15,Salary,\"1,500.00\"\n")
	p := NewParser(logging.NewMockLogger(), ',')

	result, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "salary", tx.Description)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, models.TypeCredit, tx.Type)
	assert.False(t, tx.Balance.Valid)
	assert.Equal(t, "", tx.Sender)
	assert.Equal(t, "", tx.Reference)
}

func TestMapColumns(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected map[string]int
	}{
		{
			name:     "short names",
			header:   []string{"Txn Date", "desc", "amt"},
			expected: map[string]int{"Date": 0, "Description": 1, "Amount": 2},
		},
		{
			name:   "all canonical names, mixed case and padding",
			header: []string{" REFERENCE ", "Sender", "Balance", "Type", "Amount", "Description", "Date"},
			expected: map[string]int{
				"Date": 6, "Description": 5, "Amount": 4, "Type": 3,
				"Balance": 2, "Sender": 1, "Reference": 0,
			},
		},
		{
			name:     "leftmost column wins",
			header:   []string{"Value Date", "Txn Date", "Narration", "Amount"},
			expected: map[string]int{"Date": 0, "Description": 2, "Amount": 3},
		},
		{
			name:     "claimed column is not reused",
			header:   []string{"Date", "Description", "Ref No./Cheque No.", "Payee", "Closing Bal"},
			expected: map[string]int{"Date": 0, "Description": 1, "Reference": 2, "Sender": 3, "Balance": 4},
		},
		{
			name:     "withdrawal and deposit columns are not amounts",
			header:   []string{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt.", "Closing Balance"},
			expected: map[string]int{"Date": 0, "Description": 1, "Debit": 2, "Credit": 3, "Balance": 4},
		},
		{
			name:     "column naming both sides is left alone",
			header:   []string{"Date", "Details", "Amount", "Debit/Credit"},
			expected: map[string]int{"Date": 0, "Description": 1, "Amount": 2},
		},
		{
			name:     "unrelated columns dropped",
			header:   []string{"Branch", "Remarks"},
			expected: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapColumns(tt.header).mapped())
		})
	}
}

func TestParseTable_Values(t *testing.T) {
	p := NewParser(logging.NewMockLogger(), ',')
	table := [][]string{
		{},
		{"Date", "Description", "Amount", "Type", "Balance", "Sender", "Reference", "Branch"},
		{"15/04/2024", "  UPI Payment ", "200", "DR", "9,800.00", " john doe ", "123", "MG Road"},
		{"not a date", "Refund", "-50", "credit", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"16 Apr 2024", "Fee", "", "", "x", "", "", ""},
		{"17 Apr 2024", "Cash deposit", "300"},
	}

	result, err := p.ParseTable("statement.csv", table)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 4)

	debit := result.Transactions[0]
	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), debit.Date)
	assert.Equal(t, "upi payment", debit.Description)
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(-200)), "DR makes the amount negative")
	assert.Equal(t, models.TypeDebit, debit.Type)
	assert.True(t, debit.Balance.Decimal.Equal(decimal.NewFromInt(9800)))
	assert.Equal(t, "JOHN DOE", debit.Sender)
	assert.Equal(t, "123", debit.Reference)

	refund := result.Transactions[1]
	assert.False(t, refund.HasDate(), "invalid date becomes absent")
	assert.True(t, refund.Amount.Equal(decimal.NewFromInt(50)), "credit makes the amount positive")
	assert.Equal(t, models.TypeCredit, refund.Type)

	fee := result.Transactions[2]
	assert.True(t, fee.Amount.IsZero(), "empty amount is zero")
	assert.Equal(t, models.TypeDebit, fee.Type)
	assert.False(t, fee.Balance.Valid)

	short := result.Transactions[3]
	assert.True(t, short.Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, models.TypeCredit, short.Type)
}

func TestParseTable_MissingColumnsAreAbsent(t *testing.T) {
	p := NewParser(logging.NewMockLogger(), ',')
	result, err := p.ParseTable("x.csv", [][]string{{"Particulars"}, {"opening"}})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	assert.False(t, tx.HasDate())
	assert.True(t, tx.Amount.IsZero())
	assert.Equal(t, "opening", tx.Description)
}

func TestParseTable_SignInvariant(t *testing.T) {
	p := NewParser(logging.NewMockLogger(), ',')
	result, err := p.ParseTable("x.csv", [][]string{
		{"Date", "Amount", "Type"},
		{"2024-04-01", "10", "DR"},
		{"2024-04-02", "-10", "CR"},
		{"2024-04-03", "0", "CR"},
		{"2024-04-04", "-3", "other"},
		{"2024-04-05", "3", ""},
	})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 5)
	for _, tx := range result.Transactions {
		assert.Equal(t, models.TypeForAmount(tx.Amount), tx.Type, tx.String())
	}
}

func TestParseTable_Deduplicates(t *testing.T) {
	p := NewParser(logging.NewMockLogger(), ',')
	result, err := p.ParseTable("x.csv", [][]string{
		{"Date", "Description", "Amount"},
		{"2024-04-01", "Tea", "-10"},
		{"2024-04-01", "TEA ", "-10.00"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 1)
	assert.Equal(t, 1, result.Duplicates)
}

func TestParseTable_Errors(t *testing.T) {
	p := NewParser(logging.NewMockLogger(), ',')

	t.Run("bad amount fails the file", func(t *testing.T) {
		_, err := p.ParseTable("x.csv", [][]string{
			{"Date", "Amount"},
			{"2024-04-01", "10"},
			{"2024-04-02", "ten"},
		})
		var parseErr *parsererror.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, Name, parseErr.Parser)
		assert.Equal(t, "ten", parseErr.Value)
		assert.Contains(t, parseErr.Field, "row 3")
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := p.ParseTable("x.csv", [][]string{{" ", ""}})
		var invalid *parsererror.InvalidFormatError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestParse_Delimiter(t *testing.T) {
	path := writeFile(t, "icici.csv", "\ufeffDate;Description;Amount\n2024-04-01;Tea;-1,050\n")
	p := NewParser(logging.NewMockLogger(), ';')

	result, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.True(t, result.Transactions[0].HasDate(), "BOM is stripped from the first header")
	assert.True(t, result.Transactions[0].Amount.Equal(decimal.NewFromInt(-1050)), "comma is a thousands separator")
}

func TestParse_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	_, err := NewParser(logging.NewMockLogger(), ',').Parse(context.Background(), path)

	var invalid *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &invalid)
}

func TestParse_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Transaction Date", "Narration", "Withdrawal Amt", "Deposit Amt", "Closing Balance"},
		{"2024-04-10", "ATM WDL", "2000", "", "8000"},
		{"2024-04-11", "NEFT IN", "", "5000", "13000"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result, err := NewParser(logging.NewMockLogger(), ',').Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "atm wdl", result.Transactions[0].Description)
	assert.Equal(t, models.TypeDebit, result.Transactions[0].Type)
	assert.True(t, result.Transactions[0].Amount.Equal(decimal.NewFromInt(-2000)))
	assert.Equal(t, models.TypeCredit, result.Transactions[1].Type)
	assert.True(t, result.Transactions[1].Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.Transactions[1].Balance.Decimal.Equal(decimal.NewFromInt(13000)))
}

func TestParse_InvalidWorkbooks(t *testing.T) {
	p := NewParser(logging.NewMockLogger(), ',')
	for _, name := range []string{"broken.xlsx", "broken.xls", "notes.txt"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "definitely not a workbook")
			_, err := p.Parse(context.Background(), path)

			var invalid *parsererror.InvalidFormatError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewParser(nil, 0).Parse(ctx, "whatever.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseTable_WithdrawalDepositColumns(t *testing.T) {
	p := NewParser(logging.NewMockLogger(), ',')
	table := [][]string{
		{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt.", "Closing Balance"},
		{"01/04/2024", "UPI-ACME STORES", "1,250.50", "", "8,749.50"},
		{"02/04/2024", "NEFT SALARY", "", "50,000.00", "58,749.50"},
		{"03/04/2024", "REVERSAL", "0.00", "10.00", "58,759.50"},
	}

	result, err := p.ParseTable("hdfc.csv", table)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)

	withdrawal := result.Transactions[0]
	assert.True(t, withdrawal.Amount.Equal(decimal.RequireFromString("-1250.50")))
	assert.Equal(t, models.TypeDebit, withdrawal.Type)

	deposit := result.Transactions[1]
	assert.True(t, deposit.Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, models.TypeCredit, deposit.Type)

	assert.True(t, result.Transactions[2].Amount.Equal(decimal.NewFromInt(10)))

	t.Run("bad withdrawal fails the file", func(t *testing.T) {
		_, err := p.ParseTable("hdfc.csv", [][]string{
			{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt."},
			{"01/04/2024", "ATM", "lots", ""},
		})
		var parseErr *parsererror.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "Debit (row 2)", parseErr.Field)
	})
}
