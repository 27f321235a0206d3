package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iliyamo/campus-housing/internal/utils"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		sub string
		ttl time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := c.v.GetString(keyJWTSecret)
			if secret == "" {
				return errors.New("jwt_secret must be set (env JWT_SECRET or config file)")
			}
			if sub == "" {
				sub = uuid.NewString()
			} else if _, err := uuid.Parse(sub); err != nil {
				return fmt.Errorf("--sub must be a UUID: %w", err)
			}
			tok, err := utils.NewAccessToken(secret, sub, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "subject (user id); a random UUID when empty")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
