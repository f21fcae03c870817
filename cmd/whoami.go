package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/domain"
)

// whoamiCmd shows the signed-in account. The profile is refreshed from the
// server; when the server cannot be reached the cached copy is shown.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the signed-in account",
	Long: `The whoami command displays the account of the current session. It asks the
server for a fresh profile and updates the cached copy; if the server cannot be
reached the cached profile is shown instead.

If the stored token is rejected, the session is cleared and you are asked to
log in again.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if !a.mediator.IsAuthenticated() {
			notLoggedIn()
			return nil
		}
		u, err := spin("Loading profile", func() (*domain.UserProfile, error) {
			return a.auth.Me(cmd.Context())
		})
		if err != nil {
			return fail(err, "loading your profile")
		}
		if u == nil {
			notLoggedIn()
			return nil
		}
		printProfile(u)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func notLoggedIn() {
	pterm.Println("You're not logged in yet!")
	pterm.Println("   Run 'petway login' to get started.")
}

func printProfile(u *domain.UserProfile) {
	verified := "yes"
	if u.NeedsVerification() {
		verified = "no (run: petway verify-email)"
	} else if u.Verified == nil {
		verified = "unknown"
	}
	_ = pterm.DefaultTable.WithData(pterm.TableData{
		{"Name", u.DisplayName()},
		{"Email", u.Email},
		{"Verified", verified},
	}).Render()
}
