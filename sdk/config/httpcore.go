// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
)

// FilePart is the file half of a multipart upload.
type FilePart struct {
	Field       string
	FileName    string
	Path        string
	ContentType string
}

type CoreHTTP interface {
	BuildURL(scope, resource, id string, params map[string]string) string
	Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error)
	DoMultipart(ctx context.Context, url string, fields map[string]string, file FilePart) ([]byte, int, error)
}

type httpCore struct {
	httpClient *http.Client
	coreConfig CoreConfig
}

func NewHTTPCore(httpClient *http.Client, coreConfig CoreConfig) CoreHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &httpCore{httpClient: httpClient, coreConfig: coreConfig}
}

// BuildURL returns {base}/api/{version}[/-/{scope}]/{resource}[/{id}][?params].
// Empty param values are dropped.
func (httpCore *httpCore) BuildURL(scope, resource, id string, params map[string]string) string {
	base := fmt.Sprintf("%s/api/%s", httpCore.coreConfig.BaseURL, httpCore.coreConfig.APIVersion)
	if resource != "projects" && scope != "" {
		base += "/-/" + scope
	}
	base += "/" + resource
	if id != "" {
		base += "/" + url.PathEscape(id)
	}
	query := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		query.Set(k, v)
	}
	if len(query) > 0 {
		base += "?" + query.Encode()
	}
	return base
}

func (httpCore *httpCore) Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return httpCore.send(req)
}

// DoMultipart streams fields plus one file as multipart/form-data with POST.
// The file is never fully buffered in memory.
func (httpCore *httpCore) DoMultipart(ctx context.Context, url string, fields map[string]string, file FilePart) ([]byte, int, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open local file: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, fields, file, f))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		_ = pr.Close()
		return nil, 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	b, status, err := httpCore.send(req)
	_ = pr.Close()
	return b, status, err
}

func writeMultipart(mw *multipart.Writer, fields map[string]string, file FilePart, src io.Reader) error {
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}

	name := file.FileName
	if name == "" {
		name = filepath.Base(file.Path)
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, name))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}
	return mw.Close()
}

func (httpCore *httpCore) send(req *http.Request) ([]byte, int, error) {
	// If access token is set, add Authorization header
	if tok := httpCore.coreConfig.AccessToken; tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	// If basic auth is set, add Basic Auth header
	if user := httpCore.coreConfig.BasicAuthUsername; user != "" {
		req.SetBasicAuth(user, httpCore.coreConfig.BasicAuthPassword)
	}

	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		var m map[string]any
		if json.Unmarshal(b, &m) == nil {
			if msg, ok := m["message"].(string); ok {
				apiErr.Message = msg
			}
		}
		return b, resp.StatusCode, apiErr
	}
	return b, resp.StatusCode, rerr
}
