// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/scc-digitalhub/digitalhub-import/sdk/services/crud"
)

// Resolve returns the project and dataset every upload of the run targets.
// Missing ids are created with rename-on-conflict, given ids are fetched.
// It issues exactly one request per entity and never retries.
func (p *Pipeline) Resolve(ctx context.Context, ic ImportContext) (Target, error) {
	if p.opts.UseContextTarget {
		if ic.ProjectID == nil || ic.DatasetID == nil {
			return Target{}, errors.New("project and dataset ids are required to import into the context target")
		}
		return Target{ProjectID: *ic.ProjectID, DatasetID: *ic.DatasetID}, nil
	}

	project, err := p.resolveProject(ctx, ic)
	if err != nil {
		return Target{}, fmt.Errorf("failed to resolve project: %w", err)
	}
	dataset, err := p.resolveDataset(ctx, ic, project.ID)
	if err != nil {
		return Target{}, fmt.Errorf("failed to resolve dataset: %w", err)
	}

	return Target{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		DatasetID:   dataset.ID,
		DatasetName: dataset.Name,
	}, nil
}

func (p *Pipeline) resolveProject(ctx context.Context, ic ImportContext) (*crud.ProjectInfo, error) {
	if ic.ProjectID != nil {
		return p.platform.Projects.GetProject(ctx, *ic.ProjectID)
	}
	info, err := p.platform.Projects.CreateProject(ctx, crud.CreateProjectRequest{
		WorkspaceID:          ic.WorkspaceID,
		Name:                 p.opts.ProjectName,
		ChangeNameIfConflict: true,
	})
	if err != nil {
		return nil, err
	}
	p.noteRename("project", p.opts.ProjectName, info.Name, info.ID)
	return info, nil
}

func (p *Pipeline) resolveDataset(ctx context.Context, ic ImportContext, projectID int64) (*crud.DatasetInfo, error) {
	if ic.DatasetID != nil {
		return p.platform.Datasets.GetDataset(ctx, *ic.DatasetID)
	}
	info, err := p.platform.Datasets.CreateDataset(ctx, crud.CreateDatasetRequest{
		ProjectID:            projectID,
		Name:                 p.opts.DatasetName,
		ChangeNameIfConflict: true,
	})
	if err != nil {
		return nil, err
	}
	p.noteRename("dataset", p.opts.DatasetName, info.Name, info.ID)
	return info, nil
}

func (p *Pipeline) noteRename(kind, requested, got string, id int64) {
	if got == requested {
		return
	}
	p.log.Info().
		Str("requested", requested).
		Str("name", got).
		Int64("id", id).
		Msgf("The %s was created under a different name", kind)
}
