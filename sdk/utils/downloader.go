// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// DownloadHTTPFile GETs url into destination. Non-2xx answers are errors and
// a partially written destination is removed.
func DownloadHTTPFile(ctx context.Context, client *http.Client, url string, destination string) (err error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) { _ = Body.Close() }(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read some of the body for context on error
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bad status '%s' fetching %s: %s", resp.Status, url, string(snippet))
	}

	out, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
		if err != nil {
			_ = os.Remove(destination)
		}
	}()

	buf := make([]byte, 1024*128) // 128KB
	if _, err := io.CopyBuffer(out, resp.Body, buf); err != nil {
		return fmt.Errorf("failed reading body from %s: %w", url, err)
	}
	return nil
}
