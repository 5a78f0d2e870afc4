package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PriceBook holds the unit prices used by Estimate. Providers without an
// override pay the default inbox price and sequencers without an override
// pay the default flat plan price.
type PriceBook struct {
	DomainPrice     decimal.Decimal
	InboxPrice      decimal.Decimal
	SequencingPrice decimal.Decimal

	WorkspaceInboxPrices map[WorkspaceProvider]decimal.Decimal
	SequencerPlanPrices  map[SequencingPlatform]decimal.Decimal
}

// DefaultPriceBook returns the fixed pricing model with no overrides.
func DefaultPriceBook() PriceBook {
	return PriceBook{
		DomainPrice:     decimal.New(UnitDomainPriceCents, -2),
		InboxPrice:      decimal.New(UnitInboxPriceCents, -2),
		SequencingPrice: decimal.New(FlatSequencingPriceCents, -2),
	}
}

// InboxPriceFor returns the monthly per-inbox price for a provider.
func (b PriceBook) InboxPriceFor(p WorkspaceProvider) decimal.Decimal {
	if price, ok := b.WorkspaceInboxPrices[p]; ok {
		return price
	}
	return b.InboxPrice
}

// SequencingPriceFor returns the monthly plan price for a sequencer.
func (b PriceBook) SequencingPriceFor(s SequencingPlatform) decimal.Decimal {
	if price, ok := b.SequencerPlanPrices[s]; ok {
		return price
	}
	return b.SequencingPrice
}

// Fingerprint identifies the prices of the book. Books with equal prices
// share a fingerprint regardless of how they were built.
func (b PriceBook) Fingerprint() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "d=%s;i=%s;s=%s", b.DomainPrice.String(), b.InboxPrice.String(), b.SequencingPrice.String())

	workspaces := make([]string, 0, len(b.WorkspaceInboxPrices))
	for p, price := range b.WorkspaceInboxPrices {
		workspaces = append(workspaces, fmt.Sprintf(";w:%s=%s", p, price.String()))
	}
	sort.Strings(workspaces)
	sequencers := make([]string, 0, len(b.SequencerPlanPrices))
	for s, price := range b.SequencerPlanPrices {
		sequencers = append(sequencers, fmt.Sprintf(";q:%s=%s", s, price.String()))
	}
	sort.Strings(sequencers)
	sb.WriteString(strings.Join(workspaces, ""))
	sb.WriteString(strings.Join(sequencers, ""))

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:8])
}

// catalogFile is the on-disk YAML shape. Prices are strings so they parse
// as exact decimals.
type catalogFile struct {
	DomainPrice          string            `yaml:"domain_price"`
	InboxPrice           string            `yaml:"inbox_price"`
	SequencingPrice      string            `yaml:"sequencing_price"`
	WorkspaceInboxPrices map[string]string `yaml:"workspace_inbox_prices"`
	SequencerPlanPrices  map[string]string `yaml:"sequencer_plan_prices"`
}

// LoadPriceBook reads a YAML pricing catalog. Omitted prices keep their
// default values.
func LoadPriceBook(path string) (PriceBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PriceBook{}, fmt.Errorf("failed to read pricing catalog: %w", err)
	}
	return ParsePriceBook(data)
}

// ParsePriceBook decodes a YAML pricing catalog.
func ParsePriceBook(data []byte) (PriceBook, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return PriceBook{}, fmt.Errorf("failed to parse pricing catalog: %w", err)
	}

	book := DefaultPriceBook()
	var err error
	if book.DomainPrice, err = parsePrice("domain_price", file.DomainPrice, book.DomainPrice); err != nil {
		return PriceBook{}, err
	}
	if book.InboxPrice, err = parsePrice("inbox_price", file.InboxPrice, book.InboxPrice); err != nil {
		return PriceBook{}, err
	}
	if book.SequencingPrice, err = parsePrice("sequencing_price", file.SequencingPrice, book.SequencingPrice); err != nil {
		return PriceBook{}, err
	}

	if len(file.WorkspaceInboxPrices) > 0 {
		book.WorkspaceInboxPrices = make(map[WorkspaceProvider]decimal.Decimal, len(file.WorkspaceInboxPrices))
		for name, raw := range file.WorkspaceInboxPrices {
			price, err := parsePrice("workspace_inbox_prices."+name, raw, decimal.Zero)
			if err != nil {
				return PriceBook{}, err
			}
			book.WorkspaceInboxPrices[WorkspaceProvider(name)] = price
		}
	}
	if len(file.SequencerPlanPrices) > 0 {
		book.SequencerPlanPrices = make(map[SequencingPlatform]decimal.Decimal, len(file.SequencerPlanPrices))
		for name, raw := range file.SequencerPlanPrices {
			price, err := parsePrice("sequencer_plan_prices."+name, raw, decimal.Zero)
			if err != nil {
				return PriceBook{}, err
			}
			book.SequencerPlanPrices[SequencingPlatform(name)] = price
		}
	}

	return book, nil
}

func parsePrice(field, raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return fallback, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ConfigError{Field: field, Reason: fmt.Sprintf("is not a decimal: %q", raw)}
	}
	if price.IsNegative() {
		return decimal.Zero, &ConfigError{Field: field, Reason: "must not be negative"}
	}
	return price, nil
}
