// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveKind is the container format, chosen by file extension.
type ArchiveKind int

const (
	ArchiveUnknown ArchiveKind = iota
	ArchiveZip
	ArchiveTar
	ArchiveTarGz
)

var archiveSuffixes = []struct {
	suffix string
	kind   ArchiveKind
}{
	{".tar.gz", ArchiveTarGz},
	{".tgz", ArchiveTarGz},
	{".tar", ArchiveTar},
	{".zip", ArchiveZip},
}

// DetectArchive returns the kind and the file name stripped of its archive suffix.
func DetectArchive(path string) (ArchiveKind, string) {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.kind, base[:len(base)-len(s.suffix)]
		}
	}
	return ArchiveUnknown, base
}

// ArchiveBaseName is the directory name an archive unpacks into.
func ArchiveBaseName(path string) string {
	_, name := DetectArchive(path)
	return name
}

// Unpack extracts a zip, tar or gzip'd tar archive into dest.
// Entries that would land outside dest abort the extraction.
func Unpack(archivePath, dest string) error {
	kind, _ := DetectArchive(archivePath)
	if kind == ArchiveUnknown {
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dest, err)
	}

	switch kind {
	case ArchiveZip:
		return unzip(archivePath, dest)
	case ArchiveTarGz:
		f, err := os.Open(archivePath)
		if err != nil {
			return err
		}
		defer f.Close()
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to read gzip stream: %w", err)
		}
		defer gz.Close()
		return untar(gz, dest)
	default:
		f, err := os.Open(archivePath)
		if err != nil {
			return err
		}
		defer f.Close()
		return untar(f, dest)
	}
}

func unzip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open zip %s: %w", filepath.Base(archivePath), err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open entry %s: %w", f.Name, err)
		}
		err = writeEntry(target, rc, f.Mode().Perm())
		closeErr := rc.Close()
		if err := errors.Join(err, closeErr); err != nil {
			return fmt.Errorf("extract entry %s: %w", f.Name, err)
		}
	}
	return nil
}

func untar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar: %w", err)
		}
		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return fmt.Errorf("extract entry %s: %w", hdr.Name, err)
			}
		default:
			// links, devices and fifos are not images
		}
	}
}

func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal archive entry path: %s", name)
	}
	return target, nil
}

func writeEntry(target string, src io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm|0o600)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, src)
	if err := errors.Join(copyErr, out.Close()); err != nil {
		_ = os.Remove(target)
		return err
	}
	return nil
}

// TopLevelFiles lists the regular files directly inside dir, in lexical order.
func TopLevelFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// WalkFiles lists every regular file under dir, recursively, in lexical order.
func WalkFiles(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}
