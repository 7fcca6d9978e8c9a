// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

// source turns the run input into upload items.
type source interface {
	// materialize does the fatal preparation work inside workdir.
	materialize(ctx context.Context, ic ImportContext, workdir string) ([]UploadItem, error)
	// fetch completes one item before its upload. Failures skip the item.
	fetch(ctx context.Context, item UploadItem) error
	// skipField names the log field identifying an item.
	skipField(item UploadItem) (string, string)
	// ownsItemFiles reports whether item files are removed one by one.
	ownsItemFiles() bool
	label() string
}

func newSource(p Platform, opts Options, log zerolog.Logger) source {
	switch opts.Variant {
	case VariantTextFile:
		return &urlListSource{platform: p, production: opts.Production}
	case VariantArchive:
		return &archiveSource{platform: p, production: opts.Production}
	case VariantFolder:
		return &folderSource{platform: p, production: opts.Production}
	default:
		return &linkSource{platform: p, link: strings.TrimSpace(opts.Link), log: log}
	}
}

// localSource returns a path to the run source that can be opened locally,
// downloading it from Team Files first in production.
func localSource(ctx context.Context, p Platform, production bool, ic ImportContext, workdir string) (string, error) {
	if ic.SourcePath == "" {
		return "", errors.New("source path is required")
	}
	if !production {
		return ic.SourcePath, nil
	}

	if _, err := p.TeamFiles.GetFileInfo(ctx, ic.TeamID, ic.SourcePath); err != nil {
		return "", fmt.Errorf("failed to find %s in Team Files: %w", ic.SourcePath, err)
	}
	local := filepath.Join(workdir, path.Base(ic.SourcePath))
	if _, err := p.TeamFiles.DownloadFile(ctx, ic.TeamID, ic.SourcePath, local); err != nil {
		return "", fmt.Errorf("failed to download %s from Team Files: %w", ic.SourcePath, err)
	}
	return local, nil
}

func itemsFromFiles(files []string) []UploadItem {
	items := make([]UploadItem, 0, len(files))
	for _, f := range files {
		items = append(items, UploadItem{Name: filepath.Base(f), LocalPath: f})
	}
	return items
}

/* -------------------- URL list -------------------- */

type urlListSource struct {
	platform   Platform
	production bool
}

func (s *urlListSource) materialize(ctx context.Context, ic ImportContext, workdir string) ([]UploadItem, error) {
	local, err := localSource(ctx, s.platform, s.production, ic, workdir)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(local)
	if err != nil {
		return nil, fmt.Errorf("failed to read url list: %w", err)
	}

	var items []UploadItem
	for _, line := range strings.Split(string(b), "\n") {
		link := strings.TrimSpace(line)
		if link == "" {
			continue
		}
		name := fmt.Sprintf("%03d%s", len(items), urlExt(link))
		items = append(items, UploadItem{
			Name:      name,
			LocalPath: filepath.Join(workdir, name),
			RemoteURL: link,
		})
	}
	return items, nil
}

// urlExt is the extension of the URL path, ignoring query and fragment.
func urlExt(link string) string {
	if u, err := url.Parse(link); err == nil {
		return path.Ext(u.Path)
	}
	return path.Ext(link)
}

func (s *urlListSource) fetch(ctx context.Context, item UploadItem) error {
	_, err := s.platform.Downloader.DownloadURL(ctx, item.RemoteURL, item.LocalPath)
	return err
}

func (s *urlListSource) skipField(item UploadItem) (string, string) { return "url", item.RemoteURL }
func (s *urlListSource) ownsItemFiles() bool { return true }
func (s *urlListSource) label() string { return "Processing urls" }

/* -------------------- archive -------------------- */

type archiveSource struct {
	platform   Platform
	production bool
}

func (s *archiveSource) materialize(ctx context.Context, ic ImportContext, workdir string) ([]UploadItem, error) {
	local, err := localSource(ctx, s.platform, s.production, ic, workdir)
	if err != nil {
		return nil, err
	}
	dest := filepath.Join(workdir, utils.ArchiveBaseName(local))
	if err := utils.Unpack(local, dest); err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", filepath.Base(local), err)
	}
	files, err := utils.TopLevelFiles(dest)
	if err != nil {
		return nil, err
	}
	return itemsFromFiles(files), nil
}

func (s *archiveSource) fetch(context.Context, UploadItem) error { return nil }
func (s *archiveSource) skipField(item UploadItem) (string, string) { return "name", item.Name }
func (s *archiveSource) ownsItemFiles() bool { return false }
func (s *archiveSource) label() string { return "Uploading images" }

/* -------------------- folder -------------------- */

type folderSource struct {
	platform   Platform
	production bool
}

func (s *folderSource) materialize(ctx context.Context, ic ImportContext, workdir string) ([]UploadItem, error) {
	if ic.SourcePath == "" {
		return nil, errors.New("source folder is required")
	}

	local := ic.SourcePath
	if s.production {
		local = filepath.Join(workdir, path.Base(strings.TrimSuffix(ic.SourcePath, "/")))
		if _, err := s.platform.TeamFiles.DownloadDirectory(ctx, ic.TeamID, ic.SourcePath, local); err != nil {
			return nil, fmt.Errorf("failed to download folder %s from Team Files: %w", ic.SourcePath, err)
		}
	}

	files, err := utils.WalkFiles(local)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", local, err)
	}
	return itemsFromFiles(files), nil
}

func (s *folderSource) fetch(context.Context, UploadItem) error { return nil }
func (s *folderSource) skipField(item UploadItem) (string, string) { return "name", item.Name }
func (s *folderSource) ownsItemFiles() bool { return false }
func (s *folderSource) label() string { return "Uploading images" }

/* -------------------- external link -------------------- */

type linkSource struct {
	platform Platform
	link     string
	log      zerolog.Logger
}

func (s *linkSource) materialize(ctx context.Context, _ ImportContext, workdir string) ([]UploadItem, error) {
	archivePath := filepath.Join(workdir, linkFileName(s.link))
	if _, err := s.platform.Downloader.DownloadURL(ctx, s.link, archivePath); err != nil {
		s.log.Error().Str("link", s.link).Str("reason", err.Error()).Msg("Couldn't download file from link")
		return nil, fmt.Errorf("failed to download %s: %w", s.link, err)
	}

	if err := utils.Unpack(archivePath, workdir); err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", filepath.Base(archivePath), err)
	}
	if err := os.Remove(archivePath); err != nil {
		return nil, err
	}

	files, err := utils.TopLevelFiles(workdir)
	if err != nil {
		return nil, err
	}
	return itemsFromFiles(files), nil
}

// linkFileName keeps the archive name of the link so its format can be detected.
func linkFileName(link string) string {
	if u, err := url.Parse(link); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	return "archive.zip"
}

func (s *linkSource) fetch(context.Context, UploadItem) error { return nil }
func (s *linkSource) skipField(item UploadItem) (string, string) { return "path", item.LocalPath }
func (s *linkSource) ownsItemFiles() bool { return true }
func (s *linkSource) label() string { return "Processing files" }
