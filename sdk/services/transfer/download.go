// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

const walkPageSize = int32(1000)

// DownloadURL fetches an external link with a plain GET.
func (s *TransferService) DownloadURL(ctx context.Context, link, destination string) (*DownloadInfo, error) {
	if err := utils.DownloadHTTPFile(ctx, s.client, link, destination); err != nil {
		return nil, err
	}
	return describe(destination)
}

// GetFileInfo returns *config.NotFoundError when nothing is stored at remotePath.
func (s *TransferService) GetFileInfo(ctx context.Context, teamID int64, remotePath string) (*FileInfo, error) {
	f, err := s.store.HeadFile(ctx, s.bucket, teamKey(teamID, remotePath))
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Name:         f.Name,
		Path:         remotePath,
		Size:         f.Size,
		LastModified: f.LastModified,
	}, nil
}

// DownloadFile copies one Team Files entry to localPath, creating parent dirs.
func (s *TransferService) DownloadFile(ctx context.Context, teamID int64, remotePath, localPath string) (*DownloadInfo, error) {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local directory: %w", err)
	}
	if err := s.store.DownloadFile(ctx, s.bucket, teamKey(teamID, remotePath), localPath); err != nil {
		return nil, err
	}
	return describe(localPath)
}

// DownloadDirectory mirrors a Team Files folder, recursively, under localDir.
// The first failing file aborts the whole download.
func (s *TransferService) DownloadDirectory(ctx context.Context, teamID int64, remotePath, localDir string) ([]DownloadInfo, error) {
	prefix := teamPrefix(teamID, remotePath)
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local directory: %w", err)
	}

	var out []DownloadInfo
	err := s.store.WalkPrefix(ctx, s.bucket, prefix, walkPageSize, func(f config.S3File) error {
		rel := strings.TrimPrefix(f.Path, prefix)
		target, err := safeJoin(localDir, rel)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create local directory: %w", err)
		}
		if err := s.store.DownloadFile(ctx, s.bucket, f.Path, target); err != nil {
			return fmt.Errorf("failed to download file %s: %w", rel, err)
		}
		info, err := describe(target)
		if err != nil {
			return err
		}
		out = append(out, *info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func describe(localPath string) (*DownloadInfo, error) {
	st, err := os.Stat(localPath)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", localPath)
	}
	return &DownloadInfo{Filename: filepath.Base(localPath), Size: st.Size(), Path: localPath}, nil
}

// safeJoin refuses relative keys that would land outside base.
func safeJoin(base, rel string) (string, error) {
	target := filepath.Join(base, filepath.FromSlash(rel))
	r, err := filepath.Rel(base, target)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(os.PathSeparator)) {
		return "", errors.New("invalid remote path: " + rel)
	}
	return target, nil
}
