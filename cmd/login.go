// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the connection settings in ~/.dhimport.ini",
	Long: `Writes the server address, API version, token and Team Files credentials
currently in effect (flags, environment or env files) into the profile section
selected by --env, so later runs can omit them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString(utils.ServerAddress) == "" {
			return errors.New("missing server address: use --server or SERVER_ADDRESS")
		}

		section := viper.GetString(utils.CurrentEnvironment)
		if err := utils.UpdateIniFromStruct(utils.IniPath(), section); err != nil {
			return fmt.Errorf("failed to update %s: %w", utils.IniPath(), err)
		}
		logger.Info().Str("env", section).Str("file", utils.IniPath()).Msg("Connection settings saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("server", "s", "", "Platform server address")
	loginCmd.Flags().String("api-version", "", "Platform API version")
	loginCmd.Flags().String("token", "", "Platform API token")
	loginCmd.Flags().String("bucket", "", "Team Files bucket")
	loginCmd.Flags().String("aws-access-key-id", "", "Team Files access key")
	loginCmd.Flags().String("aws-secret-access-key", "", "Team Files secret key")
	loginCmd.Flags().String("aws-endpoint-url", "", "Team Files S3 endpoint")
	loginCmd.Flags().String("aws-region", "", "Team Files region")
}
