// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/digitalhub-import/sdk/logging"
	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

var (
	envName      string
	outputFormat string

	logger = zerolog.Nop()
)

// flagKeys maps command line flags to the settings they override.
var flagKeys = map[string]string{
	"server":         utils.ServerAddress,
	"api-version":    utils.ApiVersion,
	"token":          utils.ApiToken,
	"log-level":      utils.LogLevel,
	"log-file":       utils.LogFile,
	"file":           utils.File,
	"folder":         utils.Folder,
	"url":            utils.LinkUrl,
	"team-id":        utils.TeamId,
	"workspace-id":   utils.WorkspaceId,
	"project-id":     utils.ProjectId,
	"dataset-id":     utils.DatasetId,
	"task-id":        utils.TaskId,
	"remove-source":  utils.RemoveSourceFiles,
	"data-dir":       utils.DataDir,
	"bucket":         utils.TeamFilesBucket,
	"failure-policy": utils.FailurePolicy,
	"project-name":   utils.ProjectName,
	"dataset-name":   utils.DatasetName,

	"aws-access-key-id":     utils.AwsAccessKeyID,
	"aws-secret-access-key": utils.AwsSecretAccessKey,
	"aws-endpoint-url":      utils.AwsEndpointURL,
	"aws-region":            utils.AwsRegion,
}

var rootCmd = &cobra.Command{
	Use:   "dhimport",
	Short: "Import images into platform projects from files, archives, folders and links",
	Long: `dhimport uploads images into a dataset of the platform.

The project and dataset are taken from PROJECT_ID and DATASET_ID when set,
otherwise they are created, renamed by the platform on name conflicts.
Settings come from flags, the environment, local.env, ~/dhimport.env and
the ~/.dhimport.ini profile, in this order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := utils.RegisterIniCfgWithViper(envName); err != nil {
			return err
		}
		if err := bindFlags(cmd.Flags()); err != nil {
			return err
		}

		var err error
		logger, err = logging.Configure(viper.GetString(utils.LogLevel), viper.GetString(utils.LogFile))
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "Profile section of ~/.dhimport.ini to use")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "short", "Output format: short, json or yaml")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file instead of stderr")
}

// bindFlags binds only the flags of the executing command, so a key shared
// by several subcommands follows the one actually invoked.
func bindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the CLI. An interrupt cancels the run between two items.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
