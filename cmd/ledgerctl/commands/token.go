package commands

import (
	"fmt"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/utils"
	"github.com/spf13/cobra"
)

var (
	tokenUser   string
	tokenAdmin  bool
	tokenExpiry time.Duration
)

// tokenCmd signs a bearer token with JWT_SECRET for local use.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUser == "" {
			return fmt.Errorf("--user is required")
		}
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		role := ""
		if tokenAdmin {
			role = utils.RoleAdmin
		}
		expiry := cfg.JWTExpiryDuration
		if tokenExpiry > 0 {
			expiry = tokenExpiry
		}
		token, err := utils.GenerateJWT(tokenUser, role, cfg.JWTSecret, expiry, cfg.JWTIssuer)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "Subject of the token")
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "Grant the admin role")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 0, "Token lifetime (defaults to JWT_EXPIRY_DURATION)")
}
