// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/digitalhub-import/sdk/importer"
)

var textFileFlags importFlags

var textFileCmd = &cobra.Command{
	Use:   "text-file",
	Short: "Import images from a text file listing one URL per line",
	Long: `Reads the file given by FILE (a Team Files path in production), keeps its
non-blank lines and downloads each URL as 000.<ext>, 001.<ext>, ... before
uploading it. A URL that cannot be downloaded or uploaded is skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.VariantTextFile, &textFileFlags)
	},
}

func init() {
	rootCmd.AddCommand(textFileCmd)

	textFileCmd.Flags().StringP("file", "f", "", "URL list to import (FILE)")
	addTargetFlags(textFileCmd, &textFileFlags)
}
