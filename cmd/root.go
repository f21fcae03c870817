// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface of the PetWay client.
// It implements the account flows (register, login, recovery, verification),
// the pet listing commands and the full-screen browser using the Cobra CLI
// framework, with pterm output and spinners for network calls.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/httperrors"
	"petway/cli/internal/logging"
)

var (
	showVersion bool
	apiURLFlag  string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the PetWay CLI application.
var rootCmd = &cobra.Command{
	Use:   "petway",
	Short: "PetWay client for lost and found pets",
	Long: `PetWay is a command-line client for the PetWay lost-and-found pets service.
Browse and search listings, find pets near a location, publish a lost or found
pet with a photo, and manage your account.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application. Interrupts cancel the running request.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeApp()
	if err != nil {
		if !presented(err) {
			fmt.Fprintln(os.Stderr, logging.PresentError("petway", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and API endpoint")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "PetWay API root (overrides config and PETWAY_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API calls to stderr")
}

func printVersion() {
	endpoint := "unknown"
	if a, err := getApp(); err == nil {
		endpoint = httperrors.ExtractHostFromURL(a.cfg.APIURL)
	}
	fmt.Printf("petway %s\napi %s\n", Version, endpoint)
}

// presentedError marks errors already shown to the user.
type presentedError struct{ err error }

func (p presentedError) Error() string { return p.err.Error() }
func (p presentedError) Unwrap() error { return p.err }

func presented(err error) bool {
	_, ok := err.(presentedError)
	return ok
}

// fail shows err for action and returns it marked as presented.
func fail(err error, action string) error {
	if err == nil {
		return nil
	}
	logging.Log.Debugw("command failed", "action", action, "error", logging.Mask(err.Error()))
	return presentedError{httperrors.Present(err, action)}
}

// success prints a server confirmation, or fallback when the server sent none.
func success(msg, fallback string) {
	if msg == "" {
		msg = fallback
	}
	pterm.Success.Println(msg)
}
