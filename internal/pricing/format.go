package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Display is a CostEstimate rendered for the console.
type Display struct {
	DomainRegistration string `json:"domain_registration"`
	Workspace          string `json:"workspace"`
	SequencingTool     string `json:"sequencing_tool"`
	TotalFirstMonth    string `json:"total_first_month"`
}

// LineItem captions one estimate field the way the campaign form does.
type LineItem struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Detail string `json:"detail"`
}

// FormatUSD renders an amount with a dollar sign and two decimals.
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatMonthly renders a recurring amount.
func FormatMonthly(d decimal.Decimal) string {
	return FormatUSD(d) + "/mo"
}

// Display formats the estimate. The estimate itself is left untouched.
func (e CostEstimate) Display() Display {
	return Display{
		DomainRegistration: FormatUSD(e.DomainRegistration),
		Workspace:          FormatMonthly(e.Workspace),
		SequencingTool:     FormatMonthly(e.SequencingTool),
		TotalFirstMonth:    FormatUSD(e.TotalFirstMonth),
	}
}

// LineItems captions each estimate field for c using the prices in b.
func (b PriceBook) LineItems(c CampaignConfig, e CostEstimate) []LineItem {
	return []LineItem{
		{
			Label:  "Domain Registration",
			Amount: FormatUSD(e.DomainRegistration),
			Detail: fmt.Sprintf("%d domains × $%s", c.NumberOfDomains, b.DomainPrice.String()),
		},
		{
			Label:  string(c.WorkspaceProvider),
			Amount: FormatMonthly(e.Workspace),
			Detail: fmt.Sprintf("%d inboxes × $%s/mo", c.TotalInboxes(), b.InboxPriceFor(c.WorkspaceProvider).String()),
		},
		{
			Label:  "Sequencing Tool",
			Amount: FormatMonthly(e.SequencingTool),
			Detail: fmt.Sprintf("%s starter plan", c.SequencingPlatform),
		},
		{
			Label:  "Total First Month",
			Amount: FormatUSD(e.TotalFirstMonth),
			Detail: "One-time + Monthly",
		},
	}
}
