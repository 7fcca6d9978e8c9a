// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package crud

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
)

// GetProject returns *config.NotFoundError when id matches nothing.
func (s *CrudService) GetProject(ctx context.Context, id int64) (*ProjectInfo, error) {
	body, err := s.get(ctx, projectsEndpoint, "project", id)
	if err != nil {
		return nil, err
	}
	return decodeProject(body)
}

// GetDataset returns *config.NotFoundError when id matches nothing.
func (s *CrudService) GetDataset(ctx context.Context, id int64) (*DatasetInfo, error) {
	body, err := s.get(ctx, datasetsEndpoint, "dataset", id)
	if err != nil {
		return nil, err
	}
	return decodeDataset(body)
}

func (s *CrudService) get(ctx context.Context, endpoint, kind string, id int64) ([]byte, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid %s id %d", kind, id)
	}
	idStr := strconv.FormatInt(id, 10)

	url := s.http.BuildURL("", endpoint, idStr, nil)
	body, status, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s failed (status %d): %w", kind, status, config.AsNotFound(err, kind, idStr))
	}
	return body, nil
}
