// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
)

func (s *TransferService) RemoveFile(ctx context.Context, teamID int64, remotePath string) error {
	return s.store.DeleteObjects(ctx, s.bucket, []string{teamKey(teamID, remotePath)})
}

// RemoveDirectory deletes every object under the folder prefix.
func (s *TransferService) RemoveDirectory(ctx context.Context, teamID int64, remotePath string) error {
	var keys []string
	err := s.store.WalkPrefix(ctx, s.bucket, teamPrefix(teamID, remotePath), walkPageSize, func(f config.S3File) error {
		keys = append(keys, f.Path)
		return nil
	})
	if err != nil {
		return err
	}
	return s.store.DeleteObjects(ctx, s.bucket, keys)
}
