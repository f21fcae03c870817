// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/route"
)

// logoutCmd ends the session locally and, best effort, on the server.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	Long: `The logout command removes the session token, the authentication flag and
the cached profile from the OS keyring. The server is told as well when it can
be reached; local state is cleared either way.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if _, err := spin("Signing out", func() (struct{}, error) {
			return struct{}{}, a.auth.Logout(cmd.Context())
		}); err != nil {
			return fail(err, "signing out")
		}
		a.router.Navigate(route.Home)
		pterm.Success.Println("Logged out. The stored session has been removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
