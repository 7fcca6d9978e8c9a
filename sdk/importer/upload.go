// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/scc-digitalhub/digitalhub-import/sdk/services/transfer"
	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

// uploadAll uploads items one at a time in discovery order. A failing item is
// logged and skipped, never retried. The only error returned is the
// cancellation of ctx, checked between items.
func (p *Pipeline) uploadAll(ctx context.Context, src source, target Target, items []UploadItem, sum *RunSummary) error {
	progress := utils.NewProgress(src.label(), len(items), p.opts.ProgressOut)
	defer progress.Finish()

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			sum.Processed = progress.Done()
			return err
		}

		sum.record(p.uploadOne(ctx, src, target, item))

		if src.ownsItemFiles() {
			if err := os.Remove(item.LocalPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				p.log.Debug().Str("path", item.LocalPath).Err(err).Msg("Failed to remove local file")
			}
		}
		progress.Iter()
	}

	sum.Processed = progress.Done()
	return nil
}

func (p *Pipeline) uploadOne(ctx context.Context, src source, target Target, item UploadItem) ItemResult {
	if err := src.fetch(ctx, item); err != nil {
		p.logSkip(src, item, err)
		return skipped(item, StageDownload, err)
	}

	info, err := p.platform.Images.UploadImage(ctx, transfer.UploadRequest{
		DatasetID: target.DatasetID,
		Name:      item.Name,
		Path:      item.LocalPath,
	})
	if err != nil {
		p.logSkip(src, item, err)
		return skipped(item, StageUpload, err)
	}

	p.log.Trace().Int64("id", info.ID).Str("name", info.Name).Msg("Image has been uploaded")
	return uploaded(item, info.ID, info.Name)
}

func (p *Pipeline) logSkip(src source, item UploadItem, err error) {
	key, value := src.skipField(item)
	p.log.Warn().Str(key, value).Str("reason", err.Error()).Msg("Skip image")
}
