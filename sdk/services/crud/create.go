// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

func (s *CrudService) CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectInfo, error) {
	if req.Name == "" {
		return nil, errors.New("project name is required")
	}

	body, err := s.create(ctx, "", projectsEndpoint, map[string]any{
		"workspaceId":          req.WorkspaceID,
		"name":                 req.Name,
		"changeNameIfConflict": req.ChangeNameIfConflict,
	})
	if err != nil {
		return nil, fmt.Errorf("create project failed: %w", err)
	}
	return decodeProject(body)
}

func (s *CrudService) CreateDataset(ctx context.Context, req CreateDatasetRequest) (*DatasetInfo, error) {
	if req.Name == "" {
		return nil, errors.New("dataset name is required")
	}
	if req.ProjectID == 0 {
		return nil, errors.New("project is mandatory for datasets")
	}

	body, err := s.create(ctx, strconv.FormatInt(req.ProjectID, 10), datasetsEndpoint, map[string]any{
		"projectId":            req.ProjectID,
		"name":                 req.Name,
		"changeNameIfConflict": req.ChangeNameIfConflict,
	})
	if err != nil {
		return nil, fmt.Errorf("create dataset failed: %w", err)
	}
	return decodeDataset(body)
}

func (s *CrudService) create(ctx context.Context, scope, endpoint string, payload map[string]any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	url := s.http.BuildURL(scope, endpoint, "", nil)
	body, _, err := s.http.Do(ctx, http.MethodPost, url, data)
	if err != nil {
		return nil, err
	}
	return body, nil
}
