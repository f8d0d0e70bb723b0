package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tharoon321/event-attendance/utils"
)

var (
	tokenName   string
	tokenAdmin  bool
	tokenExpiry time.Duration
)

var gentokenCmd = &cobra.Command{
	Use:   "gentoken",
	Short: "Print a signed token using JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return errors.New("JWT_SECRET is required")
		}
		token, err := utils.NewTokenManager(secret, tokenExpiry).Issue(tokenName, tokenAdmin)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	gentokenCmd.Flags().StringVar(&tokenName, "name", "Admin", "name claim")
	gentokenCmd.Flags().BoolVar(&tokenAdmin, "admin", true, "isAdmin claim")
	gentokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", time.Hour, "token lifetime")
}
