// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
)

func TestBuildURL(t *testing.T) {
	core := config.NewHTTPCore(nil, config.CoreConfig{BaseURL: "http://core", APIVersion: "v1"})

	tests := []struct {
		name     string
		scope    string
		resource string
		id       string
		params   map[string]string
		want     string
	}{
		{
			name:     "Projects ignore scope",
			scope:    "5",
			resource: "projects",
			want:     "http://core/api/v1/projects",
		},
		{
			name:     "Scoped collection",
			scope:    "12",
			resource: "datasets",
			want:     "http://core/api/v1/-/12/datasets",
		},
		{
			name:     "Entity by id",
			resource: "datasets",
			id:       "7",
			want:     "http://core/api/v1/datasets/7",
		},
		{
			name:     "Empty params are dropped",
			resource: "projects",
			params:   map[string]string{"name": "", "workspaceId": "3"},
			want:     "http://core/api/v1/projects?workspaceId=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.BuildURL(tt.scope, tt.resource, tt.id, tt.params))
		})
	}
}

func TestDoSetsAuthAndReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"name already taken"}`)
	}))
	defer srv.Close()

	core := config.NewHTTPCore(srv.Client(), config.CoreConfig{BaseURL: srv.URL, APIVersion: "v1", AccessToken: "secret"})
	_, status, err := core.Do(context.Background(), http.MethodPost, core.BuildURL("", "projects", "", nil), []byte(`{}`))

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, status)

	var apiErr *config.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "name already taken", apiErr.Message)
	assert.Contains(t, err.Error(), "409")
}

func TestAsNotFound(t *testing.T) {
	notFound := &config.APIError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}

	var nf *config.NotFoundError
	require.True(t, errors.As(config.AsNotFound(notFound, "project", "42"), &nf))
	assert.Equal(t, "project", nf.Resource)
	assert.Equal(t, "42", nf.ID)

	other := errors.New("boom")
	assert.Same(t, other, config.AsNotFound(other, "project", "42"))
}

func TestDoMultipartStreamsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "7", r.FormValue("datasetId"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "000.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))

		b, _ := io.ReadAll(f)
		assert.Equal(t, "png-bytes", string(b))
		_, _ = io.WriteString(w, `{"id":1}`)
	}))
	defer srv.Close()

	core := config.NewHTTPCore(srv.Client(), config.CoreConfig{BaseURL: srv.URL, APIVersion: "v1"})
	body, status, err := core.DoMultipart(context.Background(), core.BuildURL("", "images", "", nil),
		map[string]string{"datasetId": "7"},
		config.FilePart{Field: "file", FileName: "000.png", Path: path, ContentType: "image/png"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1}`, string(body))
}

func TestDoMultipartMissingFile(t *testing.T) {
	core := config.NewHTTPCore(nil, config.CoreConfig{BaseURL: "http://127.0.0.1:1", APIVersion: "v1"})
	_, _, err := core.DoMultipart(context.Background(), "http://127.0.0.1:1/api/v1/images", nil,
		config.FilePart{Field: "file", Path: filepath.Join(t.TempDir(), "missing.png")})
	assert.ErrorContains(t, err, "failed to open local file")
}
