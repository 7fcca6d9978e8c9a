// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package crud

import (
	"errors"

	"github.com/tidwall/gjson"
)

// unwrap accepts both a bare entity and a {"content":[...]} page,
// in which case the first element is used.
func unwrap(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.New("invalid json")
	}
	r := gjson.ParseBytes(body)
	if content := r.Get("content"); content.IsArray() {
		first := content.Get("0")
		if !first.Exists() {
			return gjson.Result{}, errors.New("resource not found")
		}
		r = first
	}
	if !r.Get("id").Exists() {
		return gjson.Result{}, errors.New("missing id in response")
	}
	return r, nil
}

func decodeProject(body []byte) (*ProjectInfo, error) {
	r, err := unwrap(body)
	if err != nil {
		return nil, err
	}
	return &ProjectInfo{
		ID:          r.Get("id").Int(),
		Name:        r.Get("name").String(),
		WorkspaceID: r.Get("workspaceId").Int(),
		CreatedAt:   r.Get("createdAt").String(),
	}, nil
}

func decodeDataset(body []byte) (*DatasetInfo, error) {
	r, err := unwrap(body)
	if err != nil {
		return nil, err
	}
	return &DatasetInfo{
		ID:        r.Get("id").Int(),
		Name:      r.Get("name").String(),
		ProjectID: r.Get("projectId").Int(),
		CreatedAt: r.Get("createdAt").String(),
	}, nil
}
