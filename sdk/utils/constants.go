// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName        = ".dhimport.ini"
	LocalEnvFile   = "local.env"
	HomeEnvFile    = "dhimport.env"
	ProductionEnv  = "production"
	EnvDumpPrefix  = "DHIMPORT"
	DefaultEnvName = "default"

	DefaultProjectName = "My Project"
	DefaultDatasetName = "ds0"
	DefaultBucket      = "team-files"
	DefaultAPIVersion  = "v1"

	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	ServerAddress     = "server_address"
	ApiVersion        = "api_version"
	ApiToken          = "api_token"
	ApiUser           = "api_user"
	ApiPassword       = "api_password"
	TeamId            = "team_id"
	WorkspaceId       = "workspace_id"
	ProjectId         = "project_id"
	DatasetId         = "dataset_id"
	TaskId            = "task_id"
	File              = "file"
	Folder            = "folder"
	LinkUrl           = "link_url"
	RemoveSourceFiles = "remove_source_files"
	Env               = "env"
	DataDir           = "data_dir"
	TeamFilesBucket   = "team_files_bucket"
	ProjectName       = "import_project_name"
	DatasetName       = "import_dataset_name"
	FailurePolicy     = "import_failure_policy"
	LogLevel          = "log_level"
	LogFile           = "log_file"

	AwsAccessKeyID     = "aws_access_key_id"
	AwsSecretAccessKey = "aws_secret_access_key"
	AwsSessionToken    = "aws_session_token"
	AwsRegion          = "aws_region"
	AwsEndpointURL     = "aws_endpoint_url"
)
