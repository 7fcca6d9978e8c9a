// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/digitalhub-import/sdk/importer"
)

var folderFlags importFlags

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Import every file of a folder, recursively",
	Long: `In production the Team Files folder given by FOLDER is downloaded first;
otherwise FOLDER is a local directory used in place. With REMOVE_SOURCE_FILES
the Team Files folder is deleted once the project is registered.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importer.VariantFolder, &folderFlags)
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)

	folderCmd.Flags().String("folder", "", "Folder to import (FOLDER)")
	addTargetFlags(folderCmd, &folderFlags)
}
