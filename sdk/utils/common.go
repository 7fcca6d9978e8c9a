// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"
)

func TranslateFormat(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	default:
		return "short"
	}
}

// Render writes v as yaml or indented json. The short format renders nothing.
func Render(w io.Writer, format string, v any) error {
	var (
		out []byte
		err error
	)
	switch TranslateFormat(format) {
	case "json":
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}

// ParseOptionalID parses a platform id. Blank input, "none" and "null" mean absent.
func ParseOptionalID(key, value string) (*int64, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "none", "null":
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s %q: must be a positive integer", key, value)
	}
	return &id, nil
}

// ParseID is ParseOptionalID for ids that default to zero when absent.
func ParseID(key, value string) (int64, error) {
	id, err := ParseOptionalID(key, value)
	if err != nil || id == nil {
		return 0, err
	}
	return *id, nil
}

// ParseBool accepts the usual spellings, with blank meaning false.
func ParseBool(key, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: must be a boolean", key, value)
	}
	return b, nil
}

func PrettyJSON(b []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return string(b)
	}
	return out.String()
}
