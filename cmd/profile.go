// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/domain"
)

var profileName string

// profileCmd renames the signed-in account.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Change your display name",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if !a.mediator.IsAuthenticated() {
			notLoggedIn()
			return nil
		}
		name := profileName
		if name == "" {
			if name, err = a.prompt.Line("New name: "); err != nil {
				return err
			}
		}
		u, err := spin("Saving profile", func() (*domain.UserProfile, error) {
			return a.auth.UpdateName(cmd.Context(), name)
		})
		if err != nil {
			return fail(err, "updating your profile")
		}
		pterm.Success.Println("Profile updated")
		printProfile(u)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	rootCmd.AddCommand(profileCmd)
}
