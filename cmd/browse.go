// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"petway/cli/internal/route"
	"petway/cli/internal/tui"
)

var browseMine bool

// browseCmd opens the full-screen pet browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse pets in a full-screen view",
	Long: `The browse command opens an interactive list of pets. Type / to filter,
Enter for details, c to copy the phone, y to copy the coordinates and o to
open directions. Owners can toggle the status with t and delete with d.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if browseMine && !a.enter(route.MyPets) {
			return nil
		}
		// The browser reports auth failures in its own status line.
		notifyMuted.Store(true)
		defer notifyMuted.Store(false)
		a.router.Navigate(route.Search)
		p := tea.NewProgram(tui.New(a.pets, browseMine), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui error: %w", err)
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().BoolVar(&browseMine, "mine", false, "Start with your own pets")
	rootCmd.AddCommand(browseCmd)
}
