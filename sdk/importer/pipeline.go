// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

// Pipeline runs one import: resolve the target, materialize the items,
// upload them and clean up.
type Pipeline struct {
	platform Platform
	opts     Options
	log      zerolog.Logger
	src      source
}

func New(p Platform, opts Options, log zerolog.Logger) (*Pipeline, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if p.Projects == nil || p.Datasets == nil || p.Images == nil {
		return nil, errors.New("projects, datasets and images clients are required")
	}
	if p.Downloader == nil && (opts.Variant == VariantTextFile || opts.Variant == VariantLink) {
		return nil, errors.New("a downloader is required for this variant")
	}
	if opts.Production && (p.TeamFiles == nil || p.Tasks == nil) {
		return nil, errors.New("team files and tasks clients are required in production")
	}

	log = log.With().Str("variant", string(opts.Variant)).Logger()
	return &Pipeline{
		platform: p,
		opts:     opts,
		log:      log,
		src:      newSource(p, opts, log),
	}, nil
}

// Run executes the import described by ic. The summary is returned whenever
// items were processed, including alongside ErrNothingImported.
func (p *Pipeline) Run(ctx context.Context, ic ImportContext) (*RunSummary, error) {
	target, err := p.Resolve(ctx, ic)
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Int64("project_id", target.ProjectID).
		Int64("dataset_id", target.DatasetID).
		Msg("Import target resolved")

	workdir, err := utils.NewWorkDir(p.opts.DataDir)
	if err != nil {
		return nil, err
	}
	cleanup := sync.OnceFunc(func() { p.removeWorkDir(workdir) })
	defer cleanup()

	items, err := p.src.materialize(ctx, ic, workdir)
	if err != nil {
		return nil, err
	}
	p.log.Info().Int("items", len(items)).Msg("Source materialized")

	sum := newSummary(target, len(items))
	if err := p.uploadAll(ctx, p.src, target, items, sum); err != nil {
		return sum, err
	}
	cleanup()

	if err := p.report(ctx, ic, sum); err != nil {
		return sum, err
	}
	return sum, p.opts.Policy.check(sum)
}
