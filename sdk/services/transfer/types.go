// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

type DownloadInfo struct {
	Filename string `json:"filename" yaml:"filename"`
	Size     int64  `json:"size"     yaml:"size"`
	Path     string `json:"path"     yaml:"path"`
}

// FileInfo describes one Team Files entry.
type FileInfo struct {
	Name         string `json:"name"         yaml:"name"`
	Path         string `json:"path"         yaml:"path"`
	Size         int64  `json:"size"         yaml:"size"`
	LastModified string `json:"lastModified" yaml:"lastModified"`
}

// -------- Upload --------

type UploadRequest struct {
	DatasetID int64
	Name      string // target image name inside the dataset
	Path      string // local file
}

type ImageInfo struct {
	ID        int64  `json:"id"        yaml:"id"`
	Name      string `json:"name"      yaml:"name"`
	DatasetID int64  `json:"datasetId" yaml:"datasetId"`
	Size      int64  `json:"size"      yaml:"size"`
	Mime      string `json:"mime"      yaml:"mime"`
}
