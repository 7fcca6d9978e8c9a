// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Settings holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive
// - bind: "false" to NOT bind from env (we still can set defaults)
type Settings struct {
	ServerAddress string `vkey:"server_address" env:"SERVER_ADDRESS" persist:"true"`
	ApiVersion    string `vkey:"api_version"    env:"API_VERSION"    persist:"true" default:"v1"`
	ApiToken      string `vkey:"api_token"      env:"API_TOKEN"      persist:"true" secret:"true"`
	ApiUser       string `vkey:"api_user"       env:"API_USER"       persist:"true"`
	ApiPassword   string `vkey:"api_password"   env:"API_PASSWORD"   persist:"true" secret:"true"`

	TeamId      string `vkey:"team_id"      env:"TEAM_ID"`
	WorkspaceId string `vkey:"workspace_id" env:"WORKSPACE_ID"`
	ProjectId   string `vkey:"project_id"   env:"PROJECT_ID"`
	DatasetId   string `vkey:"dataset_id"   env:"DATASET_ID"`
	TaskId      string `vkey:"task_id"      env:"TASK_ID"`

	File              string `vkey:"file"                env:"FILE"`
	Folder            string `vkey:"folder"              env:"FOLDER"`
	LinkUrl           string `vkey:"link_url"            env:"LINK_URL"`
	RemoveSourceFiles string `vkey:"remove_source_files" env:"REMOVE_SOURCE_FILES" default:"false"`
	Env               string `vkey:"env"                 env:"ENV"`
	DataDir           string `vkey:"data_dir"            env:"DATA_DIR"`

	TeamFilesBucket    string `vkey:"team_files_bucket"     env:"TEAM_FILES_BUCKET"     persist:"true" default:"team-files"`
	AwsAccessKeyID     string `vkey:"aws_access_key_id"     env:"AWS_ACCESS_KEY_ID"     persist:"true" secret:"true"`
	AwsSecretAccessKey string `vkey:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY" persist:"true" secret:"true"`
	AwsSessionToken    string `vkey:"aws_session_token"     env:"AWS_SESSION_TOKEN"     persist:"true" secret:"true"`
	AwsRegion          string `vkey:"aws_region"            env:"AWS_REGION"            persist:"true" default:"us-east-1"`
	AwsEndpointURL     string `vkey:"aws_endpoint_url"      env:"AWS_ENDPOINT_URL"      persist:"true"`

	ProjectName   string `vkey:"import_project_name"   env:"IMPORT_PROJECT_NAME"   default:"My Project"`
	DatasetName   string `vkey:"import_dataset_name"   env:"IMPORT_DATASET_NAME"   default:"ds0"`
	FailurePolicy string `vkey:"import_failure_policy" env:"IMPORT_FAILURE_POLICY" default:"lenient"`
	LogLevel      string `vkey:"log_level"             env:"LOG_LEVEL"             default:"info"`
	LogFile       string `vkey:"log_file"              env:"LOG_FILE"`

	UpdatedEnvironment string `vkey:"updated_environment" persist:"true" bind:"false"`
	CurrentEnvironment string `vkey:"current_environment" bind:"false"`
}

// IsProduction reports whether ENV selects the hosted mode.
func (s Settings) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(s.Env), ProductionEnv)
}

// IniPath is the connection profile location, ~/.dhimport.ini.
func IniPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, IniName)
}

// resolveEnvName: --env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return DefaultEnvName
}

// mirror PREFIX_FOO -> FOO (optional)
func mirrorPrefix(prefix string) {
	if prefix == "" {
		return
	}
	upPrefix := strings.ToUpper(prefix) + "_"
	for _, e := range os.Environ() {
		name, val, ok := strings.Cut(e, "=")
		if !ok || !strings.HasPrefix(name, upPrefix) {
			continue
		}
		unpref := strings.TrimPrefix(name, upPrefix)
		if os.Getenv(unpref) == "" {
			_ = os.Setenv(unpref, val)
		}
	}
}

func eachTaggedField(fn func(f reflect.StructField, key string)) {
	rt := reflect.TypeOf(Settings{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if key := f.Tag.Get("vkey"); key != "" {
			fn(f, key)
		}
	}
}

// BindEnvFromStruct binds env for all fields of Settings using struct tags.
func BindEnvFromStruct(prefix string) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	mirrorPrefix(prefix)

	eachTaggedField(func(f reflect.StructField, key string) {
		if def := f.Tag.Get("default"); def != "" {
			viper.SetDefault(key, def)
		}
		if f.Tag.Get("bind") == "false" {
			return
		}
		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = viper.BindEnv(key, env)
	})
	viper.SetDefault(DataDir, filepath.Join(os.TempDir(), "dhimport"))
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV can still override on Get().
func loadIniSectionIntoViper(cfg *ini.File, env string) error {
	def := cfg.Section(ini.DefaultSection)
	selected := def
	switch {
	case env != "" && cfg.HasSection(env):
		selected = cfg.Section(env)
		log.Debug().Str("env", env).Msg("Using profile section")
	case env == "" || strings.EqualFold(env, DefaultEnvName):
		log.Debug().Msg("Using profile section [DEFAULT]")
	default:
		log.Warn().Str("env", env).Msg("Profile section not found, falling back to [DEFAULT]")
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.ReadConfig(&buf)
}

// mergeDotEnv merges KEY=VALUE files into viper. Missing files are ignored.
func mergeDotEnv(paths ...string) error {
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		viper.SetConfigType("env")
		if err := viper.MergeConfig(bytes.NewReader(b)); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
		log.Debug().Str("file", p).Msg("Loaded env file")
	}
	return nil
}

// RegisterIniCfgWithViper:
// 1) bind ENV from struct (live)
// 2) load the active INI section, if any
// 3) merge local.env and ~/dhimport.env on top
func RegisterIniCfgWithViper(optionalEnv ...string) error {
	BindEnvFromStruct(EnvDumpPrefix)

	env := resolveEnvName(optionalEnv...)
	cfg, err := ini.Load(IniPath())
	if err == nil {
		// active env: --env > DEFAULT.current_environment > default
		if env == DefaultEnvName {
			if v := cfg.Section(ini.DefaultSection).Key(CurrentEnvironment).String(); v != "" {
				env = v
			}
		}
		if err := loadIniSectionIntoViper(cfg, env); err != nil {
			return fmt.Errorf("failed to load INI into viper: %w", err)
		}
	} else {
		log.Debug().Msg("INI not found; using env variables only")
	}

	home, _ := os.UserHomeDir()
	if err := mergeDotEnv(LocalEnvFile, filepath.Join(home, HomeEnvFile)); err != nil {
		return err
	}

	viper.Set(CurrentEnvironment, env)
	return nil
}

// ReadSettings snapshots the current viper state.
func ReadSettings() Settings {
	var s Settings
	rv := reflect.ValueOf(&s).Elem()
	eachTaggedField(func(f reflect.StructField, key string) {
		rv.FieldByIndex(f.Index).SetString(strings.TrimSpace(viper.GetString(key)))
	})
	return s
}

func persistInto(sec *ini.Section) {
	eachTaggedField(func(f reflect.StructField, key string) {
		if f.Tag.Get("persist") != "true" {
			return
		}
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	})
}

// WriteIniFromStruct writes a new INI with only fields marked persist:"true".
func WriteIniFromStruct(iniPath, envName string) error {
	cfg := ini.Empty()
	cfg.Section(ini.DefaultSection).Key(CurrentEnvironment).SetValue(envName)
	persistInto(cfg.Section(envName))
	return cfg.SaveTo(iniPath)
}

// UpdateIniFromStruct updates or creates an INI section from current Viper values (persist:"true" only).
func UpdateIniFromStruct(iniPath, envName string) error {
	viper.Set(UpdatedEnvKey, time.Now().UTC().Format(time.RFC3339))

	cfg, err := ini.Load(iniPath)
	if err != nil {
		return WriteIniFromStruct(iniPath, envName)
	}
	persistInto(cfg.Section(envName))

	if !cfg.Section(ini.DefaultSection).HasKey(CurrentEnvironment) {
		cfg.Section(ini.DefaultSection).Key(CurrentEnvironment).SetValue(envName)
	}
	return cfg.SaveTo(iniPath)
}
