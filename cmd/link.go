// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/digitalhub-import/sdk/importer"
)

var linkFlags importFlags

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Download an archive from an external link and import its files",
	Long: `Downloads the archive at --url (LINK_URL), unpacks it in the working
directory and uploads every top-level file. A failed download aborts the run.

With --use-context-target the images go to PROJECT_ID and DATASET_ID as given,
without fetching or creating them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.VariantLink, &linkFlags)
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().StringP("url", "u", "", "Archive link to import (LINK_URL)")
	linkCmd.Flags().StringP("file", "f", "", "Team Files entry removed with --remove-source (FILE)")
	linkCmd.Flags().BoolVar(&linkFlags.useContextTarget, "use-context-target", false, "Use PROJECT_ID and DATASET_ID as they are")
	addTargetFlags(linkCmd, &linkFlags)
}
