// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
)

// objectStore is the subset of *config.S3Client used for Team Files.
type objectStore interface {
	HeadFile(ctx context.Context, bucket, key string) (*config.S3File, error)
	DownloadFile(ctx context.Context, bucket, key, localPath string) error
	WalkPrefix(ctx context.Context, bucket, prefix string, pageSize int32, fn func(file config.S3File) error) error
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
}

// TransferService moves bytes: image uploads to the core, Team Files
// downloads/removals and plain HTTP downloads of external links.
type TransferService struct {
	http   config.CoreHTTP
	client *http.Client
	store  objectStore
	bucket string
}

func NewTransferService(ctx context.Context, conf config.Config) (*TransferService, error) {
	httpc := config.NewHTTPCore(nil, conf.Core)

	s3c, err := config.NewS3Client(ctx, conf.S3)
	if err != nil {
		return nil, fmt.Errorf("S3 init failed: %w", err)
	}

	return &TransferService{
		http:   httpc,
		client: http.DefaultClient,
		store:  s3c,
		bucket: conf.S3.Bucket,
	}, nil
}

// teamKey maps a Team Files path to its object key: <teamID>/<path>.
func teamKey(teamID int64, remotePath string) string {
	return path.Join(strconv.FormatInt(teamID, 10), strings.TrimPrefix(path.Clean("/"+remotePath), "/"))
}

func teamPrefix(teamID int64, remotePath string) string {
	return strings.TrimSuffix(teamKey(teamID, remotePath), "/") + "/"
}
