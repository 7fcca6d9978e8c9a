// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
)

const tasksEndpoint = "tasks"

type TaskService struct {
	http config.CoreHTTP
}

func NewTaskService(_ context.Context, conf config.Config) (*TaskService, error) {
	if conf.Core.BaseURL == "" || conf.Core.APIVersion == "" {
		return nil, errors.New("invalid core config")
	}
	return &TaskService{
		http: config.NewHTTPCore(nil, conf.Core),
	}, nil
}
