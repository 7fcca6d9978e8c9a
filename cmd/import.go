// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
	"github.com/scc-digitalhub/digitalhub-import/sdk/importer"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/crud"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/task"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/transfer"
	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

type importFlags struct {
	useContextTarget bool
	noProgress       bool
}

// addTargetFlags registers the flags shared by every import subcommand.
func addTargetFlags(cmd *cobra.Command, f *importFlags) {
	cmd.Flags().String("team-id", "", "Team owning the Team Files source (TEAM_ID)")
	cmd.Flags().String("workspace-id", "", "Workspace of a newly created project (WORKSPACE_ID)")
	cmd.Flags().String("project-id", "", "Existing project to import into (PROJECT_ID)")
	cmd.Flags().String("dataset-id", "", "Existing dataset to import into (DATASET_ID)")
	cmd.Flags().String("task-id", "", "Task receiving the result project in production (TASK_ID)")
	cmd.Flags().String("remove-source", "", "Remove the source from Team Files after a production run (REMOVE_SOURCE_FILES)")
	cmd.Flags().String("data-dir", "", "Parent of the per-run working directory (DATA_DIR)")
	cmd.Flags().String("bucket", "", "Team Files bucket (TEAM_FILES_BUCKET)")
	cmd.Flags().String("failure-policy", "", "lenient or strict (IMPORT_FAILURE_POLICY)")
	cmd.Flags().String("project-name", "", "Name of a newly created project (IMPORT_PROJECT_NAME)")
	cmd.Flags().String("dataset-name", "", "Name of a newly created dataset (IMPORT_DATASET_NAME)")
	cmd.Flags().StringP("server", "s", "", "Platform server address (SERVER_ADDRESS)")
	cmd.Flags().String("token", "", "Platform API token (API_TOKEN)")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "Do not draw the progress bar")
}

func runImport(cmd *cobra.Command, variant importer.Variant, f *importFlags) error {
	rc, err := buildRunConfig(utils.ReadSettings(), variant, f.useContextTarget)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	platform, err := newPlatform(ctx, rc.conf)
	if err != nil {
		return err
	}

	if !f.noProgress {
		rc.opts.ProgressOut = cmd.ErrOrStderr()
	}
	pipeline, err := importer.New(platform, rc.opts, logger)
	if err != nil {
		return err
	}

	sum, runErr := pipeline.Run(ctx, rc.ic)
	if sum != nil {
		logger.Info().
			Int("total", sum.Total).
			Int("uploaded", sum.Uploaded).
			Int("skipped", sum.Skipped).
			Msg("Import finished")
		if err := printSummary(cmd.OutOrStdout(), sum); err != nil {
			return err
		}
	}
	if runErr != nil {
		logger.Error().Err(runErr).Msg("Import failed")
	}
	return runErr
}

// printSummary prints the resolved project id, or the whole summary with
// --output json|yaml.
func printSummary(w io.Writer, sum *importer.RunSummary) error {
	if utils.TranslateFormat(outputFormat) == "short" {
		_, err := fmt.Fprintln(w, sum.ProjectID)
		return err
	}
	return utils.Render(w, outputFormat, sum)
}

func newPlatform(ctx context.Context, conf config.Config) (importer.Platform, error) {
	crudSvc, err := crud.NewCrudService(ctx, conf)
	if err != nil {
		return importer.Platform{}, err
	}
	transferSvc, err := transfer.NewTransferService(ctx, conf)
	if err != nil {
		return importer.Platform{}, err
	}
	taskSvc, err := task.NewTaskService(ctx, conf)
	if err != nil {
		return importer.Platform{}, err
	}
	return importer.Platform{
		Projects:   crudSvc,
		Datasets:   crudSvc,
		Images:     transferSvc,
		Downloader: transferSvc,
		TeamFiles:  transferSvc,
		Tasks:      taskSvc,
	}, nil
}
