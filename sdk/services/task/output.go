// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
)

// SetOutputProject reads the task, sets output.project.{id,name} and writes it
// back with PUT. Every other field of the task is preserved as received.
func (s *TaskService) SetOutputProject(ctx context.Context, req OutputRequest) error {
	if req.TaskID <= 0 {
		return errors.New("task not specified")
	}
	if req.ProjectID <= 0 {
		return errors.New("project not specified")
	}

	id := strconv.FormatInt(req.TaskID, 10)
	url := s.http.BuildURL("", tasksEndpoint, id, nil)

	body, status, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("get task failed (status %d): %w", status, config.AsNotFound(err, "task", id))
	}
	if !gjson.ValidBytes(body) {
		return errors.New("invalid json")
	}

	body, err = sjson.SetBytes(body, "output.project.id", req.ProjectID)
	if err != nil {
		return err
	}
	body, err = sjson.SetBytes(body, "output.project.name", req.ProjectName)
	if err != nil {
		return err
	}

	if _, status, err = s.http.Do(ctx, http.MethodPut, url, body); err != nil {
		return fmt.Errorf("update task failed (status %d): %w", status, err)
	}
	return nil
}
