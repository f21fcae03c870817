// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"petway/cli/internal/route"
	"petway/cli/internal/terminal"
	"petway/cli/internal/validate"
)

var changeQuestion bool

// changePasswordCmd sets a new password for the signed-in user and, when
// asked, a new security question.
var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change your password and security question",
	Long: `The change-password command sets a new password for the signed-in account.
With --question you also pick a new security question and answer; otherwise the
current question is kept.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if !a.enter(route.ChangePassword) {
			return nil
		}

		var form validate.ChangePasswordForm
		if form.Password, err = a.prompt.Secret("New password: "); err != nil {
			return err
		}
		if form.Confirm, err = a.prompt.Secret("Repeat new password: "); err != nil {
			return err
		}
		if changeQuestion {
			i, err := a.prompt.Choose("Security question (Enter to keep the current one):", validate.SecurityQuestions, true)
			if err != nil {
				return err
			}
			if i >= 0 {
				form.Question = validate.SecurityQuestions[i]
				const answerPrompt = "Answer: "
				if form.Answer, err = a.prompt.Line(answerPrompt); err != nil {
					return err
				}
				terminal.ClearPreviousLines(len(answerPrompt) + len(form.Answer))
			}
		}

		msg, err := spin("Saving", func() (string, error) {
			return a.auth.ChangePassword(cmd.Context(), form)
		})
		if err != nil {
			return fail(err, "changing your password")
		}
		a.router.Navigate(route.Home)
		success(msg, "Password updated")
		return nil
	},
}

func init() {
	changePasswordCmd.Flags().BoolVar(&changeQuestion, "question", false, "Also choose a new security question")
	rootCmd.AddCommand(changePasswordCmd)
}
