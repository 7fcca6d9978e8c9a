// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

// ImportContext is the set of identifiers driving one run. It is built once
// by the invoking command and never modified afterwards.
type ImportContext struct {
	// SourcePath is a Team Files path in production, a local path otherwise.
	SourcePath  string
	ProjectID   *int64
	DatasetID   *int64
	WorkspaceID int64
	TeamID      int64
	TaskID      *int64
}

// Target is the resolved destination of every upload of a run.
type Target struct {
	ProjectID   int64  `json:"projectId"   yaml:"projectId"`
	ProjectName string `json:"projectName" yaml:"projectName"`
	DatasetID   int64  `json:"datasetId"   yaml:"datasetId"`
	DatasetName string `json:"datasetName" yaml:"datasetName"`
}

// UploadItem is one local file plus its target name. RemoteURL is set only
// by the URL-list variant, where LocalPath is filled by the download.
type UploadItem struct {
	Name      string `json:"name"                yaml:"name"`
	LocalPath string `json:"localPath"           yaml:"localPath"`
	RemoteURL string `json:"remoteUrl,omitempty" yaml:"remoteUrl,omitempty"`
}
