package cli

import (
	"fmt"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/seed"
	"github.com/spf13/cobra"
)

func newTokenCommand(opts Options) *cobra.Command {
	var (
		identity auth.Identity
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed session token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Config.IsProduction() {
				return fmt.Errorf("refusing to issue tokens in production")
			}

			verifier := auth.NewVerifier(opts.Config.JWTSecret, opts.Config.JWTIssuer)
			token, err := verifier.Sign(identity, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&identity.UserID, "user", seed.DemoOwnerUserID, "Identity provider user id (token subject)")
	cmd.Flags().StringVar(&identity.Name, "name", "Demo Owner", "Display name")
	cmd.Flags().StringVar(&identity.Email, "email", "owner@example.com", "Email address")
	cmd.Flags().StringVar(&identity.ImageURL, "image", "", "Avatar URL")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
