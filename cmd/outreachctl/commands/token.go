package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/greysolve/outreach-console/middleware"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		email   string
		roles   []string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return errors.New("AUTH_JWT_SECRET is not set")
			}

			token, err := middleware.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer).
				IssueToken(subject, email, roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "operator id (sub claim)")
	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().StringSliceVar(&roles, "roles", []string{"operator"}, "comma separated roles")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
