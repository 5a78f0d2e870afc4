package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$129.90", FormatUSD(cents(12990)))
	assert.Equal(t, "$0.00", FormatUSD(decimal.Zero))
	assert.Equal(t, "$6.00/mo", FormatMonthly(cents(600)))
}

func TestFormat_RoundsOnlyAtPresentation(t *testing.T) {
	est := CostEstimate{
		DomainRegistration: decimal.RequireFromString("1.005"),
		Workspace:          decimal.RequireFromString("2.0049"),
		SequencingTool:     decimal.Zero,
	}
	est.TotalFirstMonth = est.DomainRegistration.Add(est.Workspace)

	d := est.Display()
	assert.Equal(t, "$1.01", d.DomainRegistration)
	assert.Equal(t, "$2.00/mo", d.Workspace)
	assert.Equal(t, "$3.01", d.TotalFirstMonth)

	assert.Equal(t, "1.005", est.DomainRegistration.String())
	assert.Equal(t, "3.0099", est.TotalFirstMonth.String())
}

func TestCostEstimate_Display(t *testing.T) {
	d := Estimate(DefaultConfig()).Display()

	assert.Equal(t, Display{
		DomainRegistration: "$129.90",
		Workspace:          "$180.00/mo",
		SequencingTool:     "$97.00/mo",
		TotalFirstMonth:    "$406.90",
	}, d)
}

func TestPriceBook_LineItems(t *testing.T) {
	book := DefaultPriceBook()
	cfg := DefaultConfig()

	items := book.LineItems(cfg, book.Estimate(cfg))
	require.Len(t, items, 4)

	assert.Equal(t, "Domain Registration", items[0].Label)
	assert.Equal(t, "10 domains × $12.99", items[0].Detail)
	assert.Equal(t, "Google Workspace", items[1].Label)
	assert.Equal(t, "$180.00/mo", items[1].Amount)
	assert.Equal(t, "30 inboxes × $6/mo", items[1].Detail)
	assert.Equal(t, "Smartlead starter plan", items[2].Detail)
	assert.Equal(t, "$406.90", items[3].Amount)
	assert.Equal(t, "One-time + Monthly", items[3].Detail)
}
