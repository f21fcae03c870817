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
	verifyEmailAddr string
	verifyCode      string
	resendEmailAddr string
)

// verifyEmailCmd confirms the account email with the emailed code.
var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email",
	Short: "Confirm your email with the code you received",
	Long: `The verify-email command sends the verification code from your inbox. When
you are signed in your email is prefilled from the session.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		a.router.Navigate(route.VerifyEmail)

		form := validate.VerifyEmailForm{Email: verifyEmailAddr, Code: verifyCode}
		if form.Email == "" {
			if u := a.store.Read().CachedUser; u != nil {
				form.Email = u.Email
			}
		}
		if form.Email == "" {
			if form.Email, err = a.prompt.Line("Email: "); err != nil {
				return err
			}
		}
		if form.Code == "" {
			if form.Code, err = a.prompt.Line("Verification code: "); err != nil {
				return err
			}
		}

		var next route.View
		msg, err := spin("Verifying", func() (string, error) {
			m, n, err := a.auth.VerifyEmail(cmd.Context(), form)
			next = n
			return m, err
		})
		if err != nil {
			return fail(err, "verifying your email")
		}
		a.router.Navigate(next)
		success(msg, "Email verified")
		if next == route.Login {
			pterm.Info.Println("You can now sign in: petway login")
		}
		return nil
	},
}

// resendCodeCmd asks the server for a new verification code.
var resendCodeCmd = &cobra.Command{
	Use:   "resend-code",
	Short: "Send a new email verification code",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		email := resendEmailAddr
		if email == "" {
			if u := a.store.Read().CachedUser; u != nil {
				email = u.Email
			}
		}
		if email == "" {
			if email, err = a.prompt.Line("Email: "); err != nil {
				return err
			}
		}
		msg, err := spin("Sending code", func() (string, error) {
			return a.auth.ResendVerification(cmd.Context(), email)
		})
		if err != nil {
			return fail(err, "sending a new code")
		}
		success(msg, "A new code is on its way")
		return nil
	},
}

func init() {
	verifyEmailCmd.Flags().StringVar(&verifyEmailAddr, "email", "", "Account email")
	verifyEmailCmd.Flags().StringVar(&verifyCode, "code", "", "Verification code")
	resendCodeCmd.Flags().StringVar(&resendEmailAddr, "email", "", "Account email")
	rootCmd.AddCommand(verifyEmailCmd, resendCodeCmd)
}
