package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/medilabo/pkg/security"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token and print its claims",
		Long: `inspect verifies the signature and expiry of a token the same way the services do,
and prints the verification outcome. Claims are printed whenever the signature is valid,
including for expired tokens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := loadSecret()
			if err != nil {
				return err
			}
			verifier, err := security.NewVerifier(security.Config{Secret: secret, TokenTTL: time.Hour})
			if err != nil {
				return err
			}

			token := strings.TrimPrefix(strings.TrimSpace(args[0]), security.BearerPrefix)
			_, outcome := verifier.Inspect(security.BearerPrefix + token)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "OUTCOME\t%s\n", outcome)
			if claims, err := security.Decode(token, []byte(secret)); err == nil {
				fmt.Fprintf(w, "SUBJECT\t%s\n", claims.Subject)
				fmt.Fprintf(w, "ROLE\t%s\n", claims.Role)
				fmt.Fprintf(w, "ISSUED AT\t%s\n", claims.IssuedAt.Format(time.RFC3339))
				fmt.Fprintf(w, "EXPIRES AT\t%s\n", claims.ExpiresAt.Format(time.RFC3339))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if outcome != security.OutcomeValid {
				return fmt.Errorf("token is not valid: %s", outcome)
			}
			return nil
		},
	}
}
