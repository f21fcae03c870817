// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/route"
	"petway/cli/internal/validate"
)

var (
	registerName  string
	registerEmail string
)

// registerCmd creates a PetWay account. The server emails a verification
// code; the user signs in afterwards.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a PetWay account",
	Long: `The register command creates a new account. You are asked for your name,
email and a password (read without echo). After registering, sign in with
'petway login' and confirm your email with the code you receive.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		a.router.Navigate(route.Register)

		form := validate.RegisterForm{Name: registerName, Email: registerEmail}
		if form.Name == "" {
			if form.Name, err = a.prompt.Line("Name: "); err != nil {
				return err
			}
		}
		if form.Email == "" {
			if form.Email, err = a.prompt.Line("Email: "); err != nil {
				return err
			}
		}
		if form.Password, err = a.prompt.Secret("Password: "); err != nil {
			return err
		}

		var next route.View
		msg, err := spin("Creating account", func() (string, error) {
			m, n, err := a.auth.Register(cmd.Context(), form)
			next = n
			return m, err
		})
		if err != nil {
			return fail(err, "creating your account")
		}
		a.router.Navigate(next)
		success(msg, "Account created")
		pterm.Info.Println("Check your inbox for the verification code, then run: petway login")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Your name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Your email")
	rootCmd.AddCommand(registerCmd)
}
