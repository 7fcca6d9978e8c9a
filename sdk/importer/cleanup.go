// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/scc-digitalhub/digitalhub-import/sdk/services/task"
)

func (p *Pipeline) removeWorkDir(workdir string) {
	if err := os.RemoveAll(workdir); err != nil {
		p.log.Warn().Str("path", workdir).Err(err).Msg("Failed to remove working directory")
		return
	}
	p.log.Debug().Str("path", workdir).Msg("Working directory removed")
}

// report registers the project as task output and, when asked to, removes
// the source from Team Files. It does nothing outside production.
func (p *Pipeline) report(ctx context.Context, ic ImportContext, sum *RunSummary) error {
	if !p.opts.Production {
		return nil
	}

	project, err := p.platform.Projects.GetProject(ctx, sum.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to read result project: %w", err)
	}
	sum.ProjectName = project.Name

	if ic.TaskID != nil {
		err := p.platform.Tasks.SetOutputProject(ctx, task.OutputRequest{
			TaskID:      *ic.TaskID,
			ProjectID:   project.ID,
			ProjectName: project.Name,
		})
		if err != nil {
			return fmt.Errorf("failed to set task output: %w", err)
		}
	} else {
		p.log.Warn().Msg("No task id, project is not registered as task output")
	}

	if p.opts.RemoveSource && ic.SourcePath != "" {
		if err := p.removeSource(ctx, ic); err != nil {
			return fmt.Errorf("failed to remove source %s: %w", ic.SourcePath, err)
		}
	}

	p.log.Info().Msgf("Result project: id=%d, name=%s", project.ID, project.Name)
	return nil
}

func (p *Pipeline) removeSource(ctx context.Context, ic ImportContext) error {
	if p.opts.Variant == VariantFolder {
		if err := p.platform.TeamFiles.RemoveDirectory(ctx, ic.TeamID, ic.SourcePath); err != nil {
			return err
		}
		p.log.Info().Msgf("Source directory: '%s' was successfully removed.", ic.SourcePath)
		return nil
	}
	if err := p.platform.TeamFiles.RemoveFile(ctx, ic.TeamID, ic.SourcePath); err != nil {
		return err
	}
	p.log.Info().Msgf("Source file: '%s' was successfully removed.", ic.SourcePath)
	return nil
}
