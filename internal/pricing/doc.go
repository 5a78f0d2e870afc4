// Package pricing provides the campaign cost estimator for the outreach console.
//
// This package implements:
//   - CampaignConfig, the user-chosen parameters that determine campaign cost
//   - CostEstimate, the first-month breakdown derived from a config
//   - A fixed price book (domains, inboxes, sequencing plan) with optional
//     per-provider overrides loaded from a YAML catalog
//   - Presentation helpers that round to cents only at display time
//
// Estimation is a pure computation over exact decimals: it never fails,
// never mutates its input and always recomputes every field.
package pricing
