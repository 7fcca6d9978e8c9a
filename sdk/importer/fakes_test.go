// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/crud"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/task"
	"github.com/scc-digitalhub/digitalhub-import/sdk/services/transfer"
)

// fakePlatform records every remote call of a run.
type fakePlatform struct {
	projects map[int64]crud.ProjectInfo
	datasets map[int64]crud.DatasetInfo
	// createdProjectName overrides the name returned on project creation.
	createdProjectName string

	createProjectCalls int
	getProjectCalls    int
	createDatasetCalls int
	getDatasetCalls    int

	// links maps a URL to the body served for it. Missing links fail.
	links      map[string][]byte
	failUpload map[string]error
	onUpload   func(name string)
	uploads    []transfer.UploadRequest
	nextImage  int64

	teamFiles map[string][]byte
	teamDirs  map[string]map[string]string
	removed   []string
	outputs   []task.OutputRequest
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		projects:   map[int64]crud.ProjectInfo{},
		datasets:   map[int64]crud.DatasetInfo{},
		links:      map[string][]byte{},
		failUpload: map[string]error{},
		teamFiles:  map[string][]byte{},
		teamDirs:   map[string]map[string]string{},
		nextImage:  500,
	}
}

func (f *fakePlatform) platform() Platform {
	return Platform{Projects: f, Datasets: f, Images: f, Downloader: f, TeamFiles: f, Tasks: f}
}

func (f *fakePlatform) CreateProject(_ context.Context, req crud.CreateProjectRequest) (*crud.ProjectInfo, error) {
	f.createProjectCalls++
	name := req.Name
	if f.createdProjectName != "" {
		name = f.createdProjectName
	}
	info := crud.ProjectInfo{ID: int64(10 + f.createProjectCalls), Name: name, WorkspaceID: req.WorkspaceID}
	f.projects[info.ID] = info
	return &info, nil
}

func (f *fakePlatform) GetProject(_ context.Context, id int64) (*crud.ProjectInfo, error) {
	f.getProjectCalls++
	info, ok := f.projects[id]
	if !ok {
		return nil, &config.NotFoundError{Resource: "project", ID: strconv.FormatInt(id, 10)}
	}
	return &info, nil
}

func (f *fakePlatform) CreateDataset(_ context.Context, req crud.CreateDatasetRequest) (*crud.DatasetInfo, error) {
	f.createDatasetCalls++
	info := crud.DatasetInfo{ID: int64(20 + f.createDatasetCalls), Name: req.Name, ProjectID: req.ProjectID}
	f.datasets[info.ID] = info
	return &info, nil
}

func (f *fakePlatform) GetDataset(_ context.Context, id int64) (*crud.DatasetInfo, error) {
	f.getDatasetCalls++
	info, ok := f.datasets[id]
	if !ok {
		return nil, &config.NotFoundError{Resource: "dataset", ID: strconv.FormatInt(id, 10)}
	}
	return &info, nil
}

func (f *fakePlatform) UploadImage(_ context.Context, req transfer.UploadRequest) (*transfer.ImageInfo, error) {
	if f.onUpload != nil {
		f.onUpload(req.Name)
	}
	if err, ok := f.failUpload[req.Name]; ok {
		return nil, err
	}
	if _, err := os.Stat(req.Path); err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, req)
	f.nextImage++
	return &transfer.ImageInfo{ID: f.nextImage, Name: req.Name, DatasetID: req.DatasetID}, nil
}

func (f *fakePlatform) DownloadURL(_ context.Context, link, destination string) (*transfer.DownloadInfo, error) {
	body, ok := f.links[link]
	if !ok {
		return nil, errors.New("dial tcp: host unreachable")
	}
	if err := os.WriteFile(destination, body, 0o644); err != nil {
		return nil, err
	}
	return &transfer.DownloadInfo{Filename: filepath.Base(destination), Size: int64(len(body)), Path: destination}, nil
}

func (f *fakePlatform) GetFileInfo(_ context.Context, _ int64, remotePath string) (*transfer.FileInfo, error) {
	body, ok := f.teamFiles[remotePath]
	if !ok {
		return nil, &config.NotFoundError{Resource: "file", ID: remotePath}
	}
	return &transfer.FileInfo{Name: filepath.Base(remotePath), Path: remotePath, Size: int64(len(body))}, nil
}

func (f *fakePlatform) DownloadFile(_ context.Context, _ int64, remotePath, localPath string) (*transfer.DownloadInfo, error) {
	body, ok := f.teamFiles[remotePath]
	if !ok {
		return nil, errors.New("no such key")
	}
	if err := os.WriteFile(localPath, body, 0o644); err != nil {
		return nil, err
	}
	return &transfer.DownloadInfo{Filename: filepath.Base(localPath), Size: int64(len(body)), Path: localPath}, nil
}

func (f *fakePlatform) DownloadDirectory(_ context.Context, _ int64, remotePath, localDir string) ([]transfer.DownloadInfo, error) {
	files, ok := f.teamDirs[remotePath]
	if !ok {
		return nil, errors.New("no such folder")
	}
	var out []transfer.DownloadInfo
	for rel, body := range files {
		target := filepath.Join(localDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
			return nil, err
		}
		out = append(out, transfer.DownloadInfo{Filename: filepath.Base(target), Path: target})
	}
	return out, nil
}

func (f *fakePlatform) RemoveFile(_ context.Context, _ int64, remotePath string) error {
	f.removed = append(f.removed, "file:"+remotePath)
	return nil
}

func (f *fakePlatform) RemoveDirectory(_ context.Context, _ int64, remotePath string) error {
	f.removed = append(f.removed, "dir:"+remotePath)
	return nil
}

func (f *fakePlatform) SetOutputProject(_ context.Context, req task.OutputRequest) error {
	f.outputs = append(f.outputs, req)
	return nil
}

func (f *fakePlatform) uploadedNames() []string {
	names := make([]string, 0, len(f.uploads))
	for _, u := range f.uploads {
		names = append(names, u.Name)
	}
	return names
}

// testLogger captures JSON log lines at every level.
func testLogger(t *testing.T) (zerolog.Logger, *bytes.Buffer) {
	t.Helper()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	var buf bytes.Buffer
	return zerolog.New(&buf).Level(zerolog.TraceLevel), &buf
}

func logLines(buf *bytes.Buffer, level, message string) []gjson.Result {
	var out []gjson.Result
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		r := gjson.Parse(line)
		if r.Get("level").String() == level && r.Get("message").String() == message {
			out = append(out, r)
		}
	}
	return out
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, body []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, body, 0o644))
	return path
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "working directories left in %s", dir)
}

func id(v int64) *int64 { return &v }
