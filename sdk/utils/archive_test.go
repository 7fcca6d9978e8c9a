// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := io.WriteString(tw, body)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestDetectArchive(t *testing.T) {
	tests := []struct {
		path     string
		kind     ArchiveKind
		baseName string
	}{
		{path: "/data/images.zip", kind: ArchiveZip, baseName: "images"},
		{path: "images.TAR", kind: ArchiveTar, baseName: "images"},
		{path: "a/b/photos.tar.gz", kind: ArchiveTarGz, baseName: "photos"},
		{path: "photos.tgz", kind: ArchiveTarGz, baseName: "photos"},
		{path: "notes.txt", kind: ArchiveUnknown, baseName: "notes.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, name := DetectArchive(tt.path)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.baseName, name)
		})
	}
}

func TestUnpackZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "images.zip")
	writeZip(t, archive, map[string]string{
		"img1.png":        "one",
		"img2.png":        "two",
		"nested/img3.png": "three",
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, Unpack(archive, dest))

	top, err := TopLevelFiles(dest)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dest, "img1.png"), filepath.Join(dest, "img2.png")}, top)

	all, err := WalkFiles(dest)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	b, err := os.ReadFile(filepath.Join(dest, "nested", "img3.png"))
	require.NoError(t, err)
	assert.Equal(t, "three", string(b))
}

func TestUnpackTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "images.tar.gz")
	writeTarGz(t, archive, map[string]string{"a.jpg": "a", "b.jpg": "bb"})

	dest := filepath.Join(dir, "images")
	require.NoError(t, Unpack(archive, dest))

	top, err := TopLevelFiles(dest)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar.gz")
	writeTarGz(t, archive, map[string]string{"../evil.png": "x"})

	err := Unpack(archive, filepath.Join(dir, "out"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "evil.png"))
}

func TestUnpackUnsupported(t *testing.T) {
	err := Unpack(filepath.Join(t.TempDir(), "file.rar"), t.TempDir())
	assert.EqualError(t, err, "unsupported archive format: file.rar")
}
