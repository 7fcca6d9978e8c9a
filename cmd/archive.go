// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/digitalhub-import/sdk/importer"
)

var archiveFlags importFlags

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Import the images of a zip, tar or tar.gz archive",
	Long: `Unpacks the archive given by FILE (a Team Files path in production) and
uploads every top-level file under its own name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.VariantArchive, &archiveFlags)
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	archiveCmd.Flags().StringP("file", "f", "", "Archive to import (FILE)")
	addTargetFlags(archiveCmd, &archiveFlags)
}
