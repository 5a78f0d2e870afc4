package pricing

import (
	"github.com/shopspring/decimal"
)

// Fixed pricing model, in cents.
const (
	UnitDomainPriceCents     = 1299 // one-time registration per domain
	UnitInboxPriceCents      = 600  // per inbox per month
	FlatSequencingPriceCents = 9700 // sequencer starter plan per month
)

// CostEstimate is the first-month cost breakdown for a CampaignConfig.
// Fields are exact; round only when presenting.
type CostEstimate struct {
	DomainRegistration decimal.Decimal `json:"domain_registration"`
	Workspace          decimal.Decimal `json:"workspace"`
	SequencingTool     decimal.Decimal `json:"sequencing_tool"`
	TotalFirstMonth    decimal.Decimal `json:"total_first_month"`
}

// Equal reports whether every field matches exactly.
func (e CostEstimate) Equal(other CostEstimate) bool {
	return e.DomainRegistration.Equal(other.DomainRegistration) &&
		e.Workspace.Equal(other.Workspace) &&
		e.SequencingTool.Equal(other.SequencingTool) &&
		e.TotalFirstMonth.Equal(other.TotalFirstMonth)
}

// Estimate computes the cost breakdown with the default price book.
func Estimate(c CampaignConfig) CostEstimate {
	return DefaultPriceBook().Estimate(c)
}

// Estimate computes the cost breakdown for c. Counts are not range checked;
// any integer input gives a breakdown whose total is the exact sum of its parts.
func (b PriceBook) Estimate(c CampaignConfig) CostEstimate {
	domains := decimal.NewFromInt(int64(c.NumberOfDomains))
	inboxes := decimal.NewFromInt(int64(c.InboxesPerDomain)).Mul(domains)

	est := CostEstimate{
		DomainRegistration: domains.Mul(b.DomainPrice),
		Workspace:          inboxes.Mul(b.InboxPriceFor(c.WorkspaceProvider)),
		SequencingTool:     b.SequencingPriceFor(c.SequencingPlatform),
	}
	est.TotalFirstMonth = est.DomainRegistration.Add(est.Workspace).Add(est.SequencingTool)
	return est
}
