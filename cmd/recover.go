// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/backend"
	"petway/cli/internal/route"
	"petway/cli/internal/terminal"
	"petway/cli/internal/validate"
)

var recoverEmail string

// recoverCmd resets a forgotten password through the account's security
// question.
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Reset a forgotten password",
	Long: `The recover command resets your password in three steps: it shows the
security question of your account, checks your answer, and then sets the new
password. Your answer is erased from the screen once entered.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		a.router.Navigate(route.RecoverPassword)

		email := recoverEmail
		if email == "" {
			if email, err = a.prompt.Line("Email: "); err != nil {
				return err
			}
		}
		question, err := spin("Looking up your account", func() (string, error) {
			return a.auth.SecurityQuestion(ctx, email)
		})
		if err != nil {
			return fail(err, "looking up your security question")
		}

		a.router.Navigate(route.VerifyQuestion)
		pterm.Info.Println(question)
		const answerPrompt = "Answer: "
		answer, err := a.prompt.Line(answerPrompt)
		if err != nil {
			return err
		}
		terminal.ClearPreviousLines(len(answerPrompt) + len(answer))

		res, err := spin("Checking answer", func() (backend.AnswerResult, error) {
			return a.auth.AnswerQuestion(ctx, email, answer)
		})
		if err != nil {
			return fail(err, "checking your answer")
		}

		a.router.Navigate(route.ResetPassword)
		form := validate.ResetPasswordForm{ResetToken: res.ResetToken}
		if form.Password, err = a.prompt.Secret("New password: "); err != nil {
			return err
		}
		if form.Confirm, err = a.prompt.Secret("Repeat new password: "); err != nil {
			return err
		}
		var next route.View
		msg, err := spin("Saving new password", func() (string, error) {
			m, n, err := a.auth.ResetPassword(ctx, form)
			next = n
			return m, err
		})
		if err != nil {
			return fail(err, "resetting your password")
		}
		a.router.Navigate(next)
		success(msg, "Password updated")
		pterm.Info.Println("Sign in with your new password: petway login")
		return nil
	},
}

func init() {
	recoverCmd.Flags().StringVar(&recoverEmail, "email", "", "Account email")
	rootCmd.AddCommand(recoverCmd)
}
