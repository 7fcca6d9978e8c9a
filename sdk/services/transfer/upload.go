// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
)

const imagesEndpoint = "images"

// UploadImage uploads a local file into a dataset under the given name.
func (s *TransferService) UploadImage(ctx context.Context, req UploadRequest) (*ImageInfo, error) {
	if req.DatasetID == 0 {
		return nil, errors.New("dataset is mandatory for image upload")
	}
	if req.Name == "" {
		return nil, errors.New("image name is required")
	}
	if req.Path == "" {
		return nil, errors.New("missing required input file")
	}

	contentType, err := detectContentType(req.Path)
	if err != nil {
		return nil, err
	}

	url := s.http.BuildURL("", imagesEndpoint, "", nil)
	body, status, err := s.http.DoMultipart(ctx, url,
		map[string]string{
			"datasetId": strconv.FormatInt(req.DatasetID, 10),
			"name":      req.Name,
		},
		config.FilePart{Field: "file", FileName: req.Name, Path: req.Path, ContentType: contentType},
	)
	if err != nil {
		return nil, fmt.Errorf("upload failed (status %d): %w", status, err)
	}

	r := gjson.ParseBytes(body)
	if !r.Get("id").Exists() {
		return nil, errors.New("missing id in upload response")
	}
	return &ImageInfo{
		ID:        r.Get("id").Int(),
		Name:      r.Get("name").String(),
		DatasetID: r.Get("datasetId").Int(),
		Size:      r.Get("size").Int(),
		Mime:      r.Get("mime").String(),
	}, nil
}

func detectContentType(localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open local file: %w", err)
	}
	defer file.Close()

	header := make([]byte, 512)
	n, _ := file.Read(header)
	return http.DetectContentType(header[:n]), nil
}
