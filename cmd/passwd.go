package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/timesync/internal/auth"
)

func newPasswdCmd() *cobra.Command {
	var password string

	c := &cobra.Command{
		Use:   "passwd",
		Short: "Print a bcrypt hash for ACCESS_PASSWORD_BCRYPT",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("password must not be empty")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "export ACCESS_PASSWORD_BCRYPT='%s'\n", hash)
			return nil
		},
	}

	c.Flags().StringVar(&password, "password", "", "access password for the web UI")
	_ = c.MarkFlagRequired("password")
	return c
}
