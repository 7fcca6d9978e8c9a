// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

// Variant selects how upload items are materialized.
type Variant string

const (
	VariantTextFile Variant = "text-file"
	VariantArchive  Variant = "archive"
	VariantFolder   Variant = "folder"
	VariantLink     Variant = "link"
)

// Options is the immutable run configuration.
type Options struct {
	Variant Variant
	// Production reads sources from Team Files and reports task output.
	Production bool
	// RemoveSource deletes the source from Team Files after a production run.
	RemoveSource bool
	// DataDir is the parent of the per-run working directory.
	DataDir     string
	ProjectName string
	DatasetName string
	Policy      FailurePolicy
	// Link is the archive URL downloaded by the link variant.
	Link string
	// UseContextTarget skips resolution: both context ids are used as-is.
	UseContextTarget bool
	// ProgressOut receives the progress bar, nil for none.
	ProgressOut io.Writer
}

func (o Options) withDefaults() Options {
	if o.ProjectName == "" {
		o.ProjectName = utils.DefaultProjectName
	}
	if o.DatasetName == "" {
		o.DatasetName = utils.DefaultDatasetName
	}
	if o.Policy == "" {
		o.Policy = PolicyLenient
	}
	return o
}

func (o Options) validate() error {
	switch o.Variant {
	case VariantTextFile, VariantArchive, VariantFolder:
	case VariantLink:
		if strings.TrimSpace(o.Link) == "" {
			return errors.New("link is required for the link variant")
		}
	default:
		return fmt.Errorf("unknown import variant %q", o.Variant)
	}
	if o.DataDir == "" {
		return errors.New("data directory is required")
	}
	if _, err := ParseFailurePolicy(string(o.Policy)); err != nil {
		return err
	}
	return nil
}
