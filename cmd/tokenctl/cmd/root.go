// Package cmd はtokenctlのサブコマンドを提供する。
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/medilabo/pkg/security"
)

// secretEnv は署名シークレットを読み込む環境変数名。
const secretEnv = "JWT_SECRET"

// NewRootCmd はtokenctlのルートコマンドを生成する。
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tokenctl",
		Short: "medilabo token tool",
		Long: `tokenctl issues and inspects the signed tokens shared by the medilabo services.
The signing secret is read from the JWT_SECRET environment variable.`,
		SilenceUsage: true,
	}
	root.AddCommand(newIssueCmd())
	root.AddCommand(newInspectCmd())
	return root
}

// Execute はルートコマンドを実行する。
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSecret は環境変数から署名シークレットを読み込む。
func loadSecret() (string, error) {
	secret := os.Getenv(secretEnv)
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	if len(secret) < security.RecommendedSecretLength {
		fmt.Fprintf(os.Stderr, "warning: JWT_SECRET is shorter than %d bytes\n", security.RecommendedSecretLength)
	}
	return secret, nil
}
