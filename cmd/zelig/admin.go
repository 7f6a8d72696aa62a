package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zelig/zelig-backend/internal/auth"
)

var tokenTTL time.Duration

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH",
	Long: `Hashes the admin password with bcrypt. The password is read from the
first argument, or from the first line of stdin when no argument is given.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		password := ""
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password given")
			}
			password = strings.TrimRight(line, "\r\n")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin bearer token signed with ADMIN_JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.AdminJWTSecret == "" {
			return errors.New("ADMIN_JWT_SECRET is not set")
		}
		token, err := auth.GenerateAdminToken("admin", []byte(cfg.AdminJWTSecret), tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", auth.AdminTokenTTL, "Token lifetime")
}
