// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	globallog "github.com/rs/zerolog/log"
)

// Configure sets up the zerolog global logger and returns it.
// With an empty logFilePath logs go to stderr through a ConsoleWriter,
// otherwise they are appended as JSON to that file.
func Configure(level string, logFilePath string) (zerolog.Logger, error) {
	logLevel, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var outputWriter io.Writer
	if logFilePath != "" {
		dir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to create log directory %q: %w", dir, err)
		}
		fileHandle, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		outputWriter = fileHandle
	} else {
		outputWriter = ConsoleWriter(os.Stderr)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(logLevel)
	globallog.Logger = zerolog.New(outputWriter).With().Timestamp().Logger()

	globallog.Debug().Msgf("Log level set to: %s", logLevel)
	return globallog.Logger, nil
}

// ConsoleWriter renders levels as [LEVEL] and messages without quotes.
func ConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i any) string {
			if level, ok := i.(string); ok {
				return strings.ToUpper(fmt.Sprintf("[%s]", level))
			}
			return fmt.Sprintf("[%v]", i)
		},
		FormatMessage: func(i any) string {
			if msg, ok := i.(string); ok {
				return msg
			}
			return fmt.Sprintf("%v", i)
		},
	}
}

// ParseLevel maps LOG_LEVEL to a zerolog level. "warning" is accepted for warn.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}
