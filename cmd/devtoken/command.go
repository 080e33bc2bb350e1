package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/recipebox/internal/identity"
)

func newCommand() *cobra.Command {
	var (
		subject string
		secret  string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Print a signed RecipeBox access token",
		Long: `Print an HS256 access token whose subject is the RecipeBox user id.
The secret defaults to AUTH_JWT_SECRET and must match the server's.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return errors.New("no secret: pass --secret or set AUTH_JWT_SECRET")
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", ttl)
			}
			if subject == "" {
				subject = uuid.NewString()
			}

			token, err := identity.Sign(secret, subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user id to embed (default: a random UUID)")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("AUTH_JWT_SECRET"), "HMAC signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
