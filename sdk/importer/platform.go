// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"

	"github.com/scc-digitalhub/digitalhub-import/sdk/services/crud"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/task"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/transfer"
)

type Projects interface {
	CreateProject(ctx context.Context, req crud.CreateProjectRequest) (*crud.ProjectInfo, error)
	GetProject(ctx context.Context, id int64) (*crud.ProjectInfo, error)
}

type Datasets interface {
	CreateDataset(ctx context.Context, req crud.CreateDatasetRequest) (*crud.DatasetInfo, error)
	GetDataset(ctx context.Context, id int64) (*crud.DatasetInfo, error)
}

type Images interface {
	UploadImage(ctx context.Context, req transfer.UploadRequest) (*transfer.ImageInfo, error)
}

// Downloader fetches external links with a plain GET.
type Downloader interface {
	DownloadURL(ctx context.Context, link, destination string) (*transfer.DownloadInfo, error)
}

// TeamFiles is the platform's remote file storage.
type TeamFiles interface {
	GetFileInfo(ctx context.Context, teamID int64, remotePath string) (*transfer.FileInfo, error)
	DownloadFile(ctx context.Context, teamID int64, remotePath, localPath string) (*transfer.DownloadInfo, error)
	DownloadDirectory(ctx context.Context, teamID int64, remotePath, localDir string) ([]transfer.DownloadInfo, error)
	RemoveFile(ctx context.Context, teamID int64, remotePath string) error
	RemoveDirectory(ctx context.Context, teamID int64, remotePath string) error
}

type Tasks interface {
	SetOutputProject(ctx context.Context, req task.OutputRequest) error
}

// Platform bundles the remote collaborators of a run. *crud.CrudService
// serves Projects and Datasets; *transfer.TransferService serves Images,
// Downloader and TeamFiles; *task.TaskService serves Tasks.
type Platform struct {
	Projects   Projects
	Datasets   Datasets
	Images     Images
	Downloader Downloader
	TeamFiles  TeamFiles
	Tasks      Tasks
}
