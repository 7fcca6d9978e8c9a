// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNothingImported is returned under the strict policy when items were
// found but none was uploaded.
var ErrNothingImported = errors.New("no image was imported")

// Stage is where an item was abandoned.
type Stage string

const (
	StageDownload Stage = "download"
	StageUpload   Stage = "upload"
)

type Outcome struct {
	ImageID int64  `json:"imageId" yaml:"imageId"`
	Name    string `json:"name"    yaml:"name"`
}

type Skip struct {
	Stage  Stage  `json:"stage"  yaml:"stage"`
	Reason string `json:"reason" yaml:"reason"`
}

// ItemResult holds exactly one of Outcome or Skip.
type ItemResult struct {
	Item    UploadItem `json:"item"              yaml:"item"`
	Outcome *Outcome   `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Skip    *Skip      `json:"skip,omitempty"    yaml:"skip,omitempty"`
}

func (r ItemResult) OK() bool { return r.Outcome != nil }

func uploaded(item UploadItem, id int64, name string) ItemResult {
	return ItemResult{Item: item, Outcome: &Outcome{ImageID: id, Name: name}}
}

func skipped(item UploadItem, stage Stage, err error) ItemResult {
	return ItemResult{Item: item, Skip: &Skip{Stage: stage, Reason: err.Error()}}
}

// RunSummary aggregates the per-item results of a run.
// Once the loop completes, Processed == Total == Uploaded + Skipped.
type RunSummary struct {
	Target
	Total     int           `json:"total"     yaml:"total"`
	Processed int           `json:"processed" yaml:"processed"`
	Uploaded  int           `json:"uploaded"  yaml:"uploaded"`
	Skipped   int           `json:"skipped"   yaml:"skipped"`
	Reasons   map[Stage]int `json:"reasons"   yaml:"reasons"`
	Results   []ItemResult  `json:"results"   yaml:"results"`
}

func newSummary(target Target, total int) *RunSummary {
	return &RunSummary{
		Target:  target,
		Total:   total,
		Reasons: map[Stage]int{},
		Results: make([]ItemResult, 0, total),
	}
}

func (s *RunSummary) record(r ItemResult) {
	s.Results = append(s.Results, r)
	if r.OK() {
		s.Uploaded++
		return
	}
	s.Skipped++
	s.Reasons[r.Skip.Stage]++
}

// FailurePolicy decides whether skipped items fail the run.
type FailurePolicy string

const (
	// PolicyLenient never fails a run because of skipped items.
	PolicyLenient FailurePolicy = "lenient"
	// PolicyStrict fails a run that found items but uploaded none.
	PolicyStrict FailurePolicy = "strict"
)

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyLenient, nil
	case PolicyLenient, PolicyStrict:
		return p, nil
	default:
		return "", fmt.Errorf("invalid failure policy %q: must be lenient or strict", s)
	}
}

func (p FailurePolicy) check(s *RunSummary) error {
	if p == PolicyStrict && s.Total > 0 && s.Uploaded == 0 {
		return fmt.Errorf("%w: %d of %d items skipped", ErrNothingImported, s.Skipped, s.Total)
	}
	return nil
}
