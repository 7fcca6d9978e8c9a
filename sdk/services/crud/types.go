// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package crud

type CreateProjectRequest struct {
	WorkspaceID int64
	Name        string
	// The platform renames the entity instead of failing on a duplicate name.
	ChangeNameIfConflict bool
}

type CreateDatasetRequest struct {
	ProjectID            int64
	Name                 string
	ChangeNameIfConflict bool
}

type ProjectInfo struct {
	ID          int64  `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	WorkspaceID int64  `json:"workspaceId" yaml:"workspaceId"`
	CreatedAt   string `json:"createdAt"   yaml:"createdAt"`
}

type DatasetInfo struct {
	ID        int64  `json:"id"        yaml:"id"`
	Name      string `json:"name"      yaml:"name"`
	ProjectID int64  `json:"projectId" yaml:"projectId"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}
