package session

import (
	"fmt"
	"os"
	"time"

	"github.com/cyberpeers/cyberpeers-server/cmd/cli/config"
	"github.com/cyberpeers/cyberpeers-server/cmd/cli/root"
	"github.com/cyberpeers/cyberpeers-server/internal/auth"
	"github.com/spf13/cobra"
)

func init() {
	root.GetRoot().AddCommand(tokenCmd(), logoutCmd())
}

// tokenCmd mints a development token for servers running with AUTH_PROVIDER=jwt.
// Firebase deployments take an ID token from the client SDK via --raw instead.
func tokenCmd() *cobra.Command {
	var email, secret, raw string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Store a bearer token for later commands",
		Long: `Mint a shared-secret JWT for a development server, or store an
existing identity-provider token with --raw.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := raw
			if token == "" {
				if secret == "" {
					secret = os.Getenv("JWT_SECRET")
				}
				if secret == "" {
					return fmt.Errorf("--secret (or JWT_SECRET) is required unless --raw is given")
				}
				var err error
				token, err = auth.IssueToken([]byte(secret), email, ttl)
				if err != nil {
					return err
				}
			}
			if err := config.SaveToken(token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token saved to", config.TokenPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", config.DefaultEmail(), "Email claim for the minted token")
	cmd.Flags().StringVar(&secret, "secret", "", "Shared secret (default $JWT_SECRET)")
	cmd.Flags().StringVar(&raw, "raw", "", "Store this token verbatim instead of minting one")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Lifetime of the minted token")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RemoveToken(); err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "No token stored.")
					return nil
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}
