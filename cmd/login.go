// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"math/rand"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/auth"
	"petway/cli/internal/route"
	"petway/cli/internal/validate"
)

var loginEmail string

// loginCmd signs in with email and password and stores the session in the
// OS keyring.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in to PetWay",
	Long: `The login command signs in with your email and password. The session token
and your profile are stored in the OS keyring and reused by later commands
until you log out or the server rejects the token.

Accounts whose email is not verified yet are pointed to 'petway verify-email'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		// A refused sign-in must not redirect to itself.
		a.router.Navigate(route.Login)

		if a.mediator.IsAuthenticated() {
			if u := a.store.Read().CachedUser; u != nil {
				pterm.Info.Printf("Already logged in as %s. Run 'petway logout' first to switch accounts.\n", u.DisplayName())
				return nil
			}
		}

		form := validate.LoginForm{Email: loginEmail}
		if form.Email == "" {
			if form.Email, err = a.prompt.Line("Email: "); err != nil {
				return err
			}
		}
		if form.Password, err = a.prompt.Secret("Password: "); err != nil {
			return err
		}

		out, err := spin("Signing in", func() (auth.LoginOutcome, error) {
			return a.auth.Login(cmd.Context(), form)
		})
		if err != nil {
			return fail(err, "signing in")
		}
		a.router.Navigate(out.Next)

		name := form.Email
		if out.User != nil && out.User.DisplayName() != "" {
			name = out.User.DisplayName()
		}
		fmt.Println(getRandomLoginGreeting(name))
		if out.Next == route.VerifyEmail {
			pterm.Warning.Println("Your email is not verified yet. Run: petway verify-email")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	rootCmd.AddCommand(loginCmd)
}

// getRandomLoginGreeting returns a random greeting phrase with the user's name.
func getRandomLoginGreeting(name string) string {
	greetings := []string{
		"Welcome back, %s!",
		"Great to see you, %s!",
		"You're all set, %s!",
		"Logged in as %s",
		"Hello %s! Let's bring them home.",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], name)
}
