// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestParseOptionalID(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		want        *int64
		errContains string
	}{
		{name: "Blank", value: "  "},
		{name: "Python none", value: "None"},
		{name: "Valid", value: " 42 ", want: ptr(int64(42))},
		{name: "Negative", value: "-1", errContains: "must be a positive integer"},
		{name: "Not a number", value: "abc", errContains: "invalid project_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptionalID("project_id", tt.value)
			if tt.errContains != "" {
				assert.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "True", "1"} {
		b, err := ParseBool("remove_source_files", v)
		require.NoError(t, err)
		assert.True(t, b, v)
	}
	b, err := ParseBool("remove_source_files", "")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = ParseBool("remove_source_files", "maybe")
	assert.ErrorContains(t, err, "must be a boolean")
}

func TestRender(t *testing.T) {
	v := map[string]any{"projectId": 11}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "yml", v))
	assert.Equal(t, "projectId: 11\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, "json", v))
	assert.JSONEq(t, `{"projectId":11}`, buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, "short", v))
	assert.Empty(t, buf.String())
}

func TestProgressCountsEveryItem(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress("Processing urls", 3, &buf)
	for range 3 {
		p.Iter()
	}
	p.Finish()

	assert.Equal(t, 3, p.Done())
	assert.Equal(t, 3, p.Total())
	assert.Contains(t, buf.String(), "3/3")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressSilent(t *testing.T) {
	p := NewProgress("Uploading", 1, nil)
	p.Iter()
	p.Finish()
	assert.Equal(t, 1, p.Done())
}

func TestNewWorkDir(t *testing.T) {
	base := t.TempDir()
	a, err := NewWorkDir(base)
	require.NoError(t, err)
	b, err := NewWorkDir(base)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.DirExists(t, a)
	assert.Len(t, filepath.Base(a), 32)
}

func setupViper(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestReadSettingsDefaults(t *testing.T) {
	setupViper(t)
	require.NoError(t, RegisterIniCfgWithViper())

	s := ReadSettings()
	assert.Equal(t, "v1", s.ApiVersion)
	assert.Equal(t, DefaultBucket, s.TeamFilesBucket)
	assert.Equal(t, DefaultProjectName, s.ProjectName)
	assert.Equal(t, DefaultDatasetName, s.DatasetName)
	assert.Equal(t, "lenient", s.FailurePolicy)
	assert.Equal(t, filepath.Join(os.TempDir(), "dhimport"), s.DataDir)
	assert.Equal(t, DefaultEnvName, s.CurrentEnvironment)
	assert.False(t, s.IsProduction())
}

func TestReadSettingsLayering(t *testing.T) {
	home := setupViper(t)

	profile := ini.Empty()
	profile.Section(ini.DefaultSection).Key(CurrentEnvironment).SetValue("staging")
	profile.Section("staging").Key(ServerAddress).SetValue("https://staging.example")
	profile.Section("staging").Key(ApiToken).SetValue("from-ini")
	require.NoError(t, profile.SaveTo(filepath.Join(home, IniName)))

	require.NoError(t, os.WriteFile(LocalEnvFile, []byte("TEAM_ID=5\nWORKSPACE_ID=3\nAPI_TOKEN=from-dotenv\n"), 0o644))
	t.Setenv("WORKSPACE_ID", "9")
	t.Setenv("ENV", "")
	t.Setenv("DHIMPORT_ENV", "production")

	require.NoError(t, RegisterIniCfgWithViper())
	s := ReadSettings()

	assert.Equal(t, "https://staging.example", s.ServerAddress)
	assert.Equal(t, "from-dotenv", s.ApiToken)
	assert.Equal(t, "5", s.TeamId)
	assert.Equal(t, "9", s.WorkspaceId)
	assert.Equal(t, "staging", s.CurrentEnvironment)
	assert.True(t, s.IsProduction())
}

func TestUpdateIniFromStructPersistsMarkedKeysOnly(t *testing.T) {
	home := setupViper(t)
	BindEnvFromStruct("")

	viper.Set(ServerAddress, "https://core.example")
	viper.Set(ApiToken, "secret")
	viper.Set(TeamId, "5")

	path := filepath.Join(home, IniName)
	require.NoError(t, UpdateIniFromStruct(path, "prod"))

	cfg, err := ini.Load(path)
	require.NoError(t, err)
	sec := cfg.Section("prod")
	assert.Equal(t, "https://core.example", sec.Key(ServerAddress).String())
	assert.Equal(t, "secret", sec.Key(ApiToken).String())
	assert.False(t, sec.HasKey(TeamId))
	assert.NotEmpty(t, sec.Key(UpdatedEnvKey).String())
	assert.Equal(t, "prod", cfg.Section(ini.DefaultSection).Key(CurrentEnvironment).String())
}
