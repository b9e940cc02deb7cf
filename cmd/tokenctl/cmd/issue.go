package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/medilabo/pkg/config"
	"github.com/nao1215/medilabo/pkg/security"
)

func newIssueCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed token",
		Example: `  tokenctl issue --subject 0b6c... --role USER
  tokenctl issue --subject admin --role ADMIN --ttl 15m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := security.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q (expected USER or ADMIN)", role)
			}
			secret, err := loadSecret()
			if err != nil {
				return err
			}

			issuer, err := security.NewIssuer(security.Config{Secret: secret, TokenTTL: ttl})
			if err != nil {
				return err
			}
			token, err := issuer.Issue(subject, r, ttl)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject (user id) of the token")
	cmd.Flags().StringVar(&role, "role", security.RoleUser.String(), "role of the token (USER or ADMIN)")
	cmd.Flags().DurationVar(&ttl, "ttl", config.DefaultTokenTTL, "validity period of the token")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
