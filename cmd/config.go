// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"petway/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		c := a.cfg
		_ = pterm.DefaultTable.WithData(pterm.TableData{
			{"api_url", c.APIURL},
			{"log_level", c.LogLevel},
			{"keyring_backend", c.KeyringBackend},
			{"keyring_dir", c.KeyringDir},
			{"near_radius", strconv.Itoa(c.NearRadius)},
			{"request_timeout", c.RequestTimeout.String()},
		}).Render()
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in config.json",
	Long: `The set command writes one setting to config.json in the XDG config
directory. Environment variables (PETWAY_*) still take precedence.
Keys: api_url, log_level, keyring_backend, keyring_dir, near_radius, request_timeout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := setKey(&c, args[0], args[1]); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return err
		}
		pterm.Success.Printf("%s saved\n", args[0])
		return nil
	},
}

func setKey(c *config.Config, key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "log_level":
		c.LogLevel = value
	case "keyring_backend":
		c.KeyringBackend = value
	case "keyring_dir":
		c.KeyringDir = value
	case "near_radius":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("near_radius: %w", err)
		}
		c.NearRadius = n
	case "request_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		c.RequestTimeout = d
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
