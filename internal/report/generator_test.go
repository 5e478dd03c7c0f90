package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"ledgerlens/ledgerlens/internal/analysis"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleSummary() models.Summary {
	return models.Summary{
		Month:            "2024_04",
		TransactionCount: 3,
		TotalCredit:      decimal.NewFromInt(500),
		TotalDebit:       decimal.NewFromInt(-250),
		DailyAverage:     decimal.NewFromInt(250).Div(decimal.NewFromInt(3)),
		UPICount:         1,
		TopSenders:       []models.SenderCount{{Sender: "JOHN DOE", Count: 1}},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRenderSummary_JSON(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	out, err := g.RenderSummary(sampleSummary(), FormatJSON)
	require.NoError(t, err)

	var view summaryView
	require.NoError(t, json.Unmarshal(out, &view))
	assert.Equal(t, "2024_04", view.Month)
	assert.Equal(t, "500.00", view.TotalCredit)
	assert.Equal(t, "-250.00", view.TotalDebit)
	assert.Equal(t, "83.33", view.DailyAverage)
	assert.Equal(t, []models.SenderCount{{Sender: "JOHN DOE", Count: 1}}, view.TopSenders)
}

func TestRenderSummary_YAML(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	out, err := g.RenderSummary(sampleSummary(), FormatYAML)
	require.NoError(t, err)

	var view summaryView
	require.NoError(t, yaml.Unmarshal(out, &view))
	assert.Equal(t, "83.33", view.DailyAverage)
	assert.Equal(t, 1, view.UPICount)
}

func TestRenderSummary_Text(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger())
	out, err := g.RenderSummary(sampleSummary(), FormatText)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Analysis for 2024_04 (3 transactions)")
	assert.Contains(t, text, "Daily Avg     83.33")
	assert.Contains(t, text, "JOHN DOE  1")

	empty := sampleSummary()
	empty.TopSenders = nil
	out, err = g.RenderSummary(empty, FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(out), "(none)")
}

func TestRenderSummary_Unsupported(t *testing.T) {
	_, err := NewGenerator(nil).RenderSummary(sampleSummary(), Format("xml"))
	assert.Error(t, err)
}

func TestWriteTransactions(t *testing.T) {
	txs := []models.Transaction{
		models.Normalize(models.Transaction{
			Date:        time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
			Description: "UPI/CR/123456789/JOHN DOE/payment",
			Amount:      decimal.NewFromInt(500),
			Sender:      "john doe",
			Reference:   "123456789",
		}),
		models.Normalize(models.Transaction{
			Description: "cash",
			Amount:      decimal.NewFromInt(-20),
		}),
	}

	var buf bytes.Buffer
	g := NewGenerator(logging.NewMockLogger())
	require.NoError(t, g.WriteTransactions(&buf, txs, analysis.ComputeInsights(txs)))

	out := buf.String()
	assert.Contains(t, out, "2024-04-15")
	assert.Contains(t, out, "upi/cr/123456789/john doe/payment")
	assert.Contains(t, out, "2 transactions")
	assert.Contains(t, out, "Total credit: 500.00")
	assert.Contains(t, out, "Total debit:  -20.00")
	assert.Contains(t, out, "Top sender:   JOHN DOE (1)")
	assert.Contains(t, out, "Largest:      2024-04-15 CR 500.00")
}
