package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"guild-logger/internal/auth"
	"guild-logger/internal/config"
	"guild-logger/internal/rbac"
)

var (
	tokenUser  string
	tokenGuild string
	tokenRole  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an operator API token pair",
	Long: `Issue a signed access/refresh token pair for the operator HTTP API.

Examples:
  guildlog token --guild 123456789012345678 --role owner
  guildlog token --role super_admin --user ops`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "Subject of the token (default: random uuid)")
	tokenCmd.Flags().StringVar(&tokenGuild, "guild", "", "Guild id the token is scoped to")
	tokenCmd.Flags().StringVar(&tokenRole, "role", rbac.RoleViewer, "Role: owner, viewer or super_admin")
}

func runToken(cmd *cobra.Command, args []string) error {
	if !rbac.IsKnownRole(tokenRole) {
		return fmt.Errorf("unknown role %q", tokenRole)
	}
	cfg, err := config.LoadAuth()
	if err != nil {
		return err
	}
	m, err := auth.NewManager(cfg.Auth)
	if err != nil {
		return err
	}
	user := tokenUser
	if user == "" {
		user = uuid.NewString()
	}
	pair, err := m.IssuePair(time.Now(), user, tokenGuild, tokenRole)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "access:  %s\n", pair.AccessToken)
	fmt.Fprintf(out, "refresh: %s\n", pair.RefreshToken)
	return nil
}
