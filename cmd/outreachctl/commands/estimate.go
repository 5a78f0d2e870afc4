package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/services/estimate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func estimateCmd() *cobra.Command {
	var (
		cfg         pricing.CampaignConfig
		workspace   string
		sequencer   string
		catalogFile string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the cost breakdown of a campaign configuration",
		Long: "Print the cost breakdown of a campaign configuration.\n" +
			"Counts outside the form limits are clamped the same way the console does.",
		RunE: func(cmd *cobra.Command, args []string) error {
			book := pricing.DefaultPriceBook()
			if catalogFile != "" {
				var err error
				if book, err = pricing.LoadPriceBook(catalogFile); err != nil {
					return err
				}
			}

			cfg.WorkspaceProvider = pricing.WorkspaceProvider(workspace)
			cfg.SequencingPlatform = pricing.SequencingPlatform(sequencer)

			result, err := estimate.NewService(book, nil, zap.NewNop()).Estimate(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return printBreakdown(cmd.OutOrStdout(), result)
		},
	}

	defaults := pricing.DefaultConfig()
	cmd.Flags().IntVar(&cfg.NumberOfDomains, "domains", defaults.NumberOfDomains, "number of sending domains")
	cmd.Flags().IntVar(&cfg.InboxesPerDomain, "inboxes", defaults.InboxesPerDomain, "inboxes per domain")
	cmd.Flags().StringVar(&workspace, "workspace", string(defaults.WorkspaceProvider), "workspace provider")
	cmd.Flags().StringVar(&sequencer, "sequencer", string(defaults.SequencingPlatform), "sequencing platform")
	cmd.Flags().StringVar(&catalogFile, "pricing", "", "YAML pricing catalog (default built-in prices)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the estimate as JSON")
	return cmd
}

func printBreakdown(out io.Writer, r *estimate.Result) error {
	fmt.Fprintf(out, "%d domains, %d inboxes per domain (%d inboxes)\n",
		r.Config.NumberOfDomains, r.Config.InboxesPerDomain, r.Config.TotalInboxes())
	fmt.Fprintf(out, "%s via %s\n\n", r.Config.WorkspaceProvider, r.Config.SequencingPlatform)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, item := range r.LineItems {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Label, item.Amount, item.Detail)
	}
	return tw.Flush()
}
