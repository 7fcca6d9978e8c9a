// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/scc-digitalhub/digitalhub-import/sdk/config"
	"github.com/scc-digitalhub/digitalhub-import/sdk/importer"
	"github.com/scc-digitalhub/digitalhub-import/sdk/utils"
)

// runConfig is everything a run needs, derived once from the settings.
type runConfig struct {
	conf config.Config
	ic   importer.ImportContext
	opts importer.Options
}

func buildRunConfig(s utils.Settings, variant importer.Variant, useContextTarget bool) (runConfig, error) {
	var rc runConfig

	if s.ServerAddress == "" {
		return rc, errors.New("missing server address: set SERVER_ADDRESS or run 'dhimport login'")
	}
	rc.conf = config.Config{
		Core: config.CoreConfig{
			BaseURL:           strings.TrimSuffix(s.ServerAddress, "/"),
			APIVersion:        s.ApiVersion,
			AccessToken:       s.ApiToken,
			BasicAuthUsername: s.ApiUser,
			BasicAuthPassword: s.ApiPassword,
		},
		S3: config.S3Config{
			AccessKey:   s.AwsAccessKeyID,
			SecretKey:   s.AwsSecretAccessKey,
			AccessToken: s.AwsSessionToken,
			Region:      s.AwsRegion,
			EndpointURL: s.AwsEndpointURL,
			Bucket:      s.TeamFilesBucket,
		},
	}

	ic, err := buildContext(s, variant)
	if err != nil {
		return rc, err
	}
	rc.ic = ic

	removeSource, err := utils.ParseBool(utils.RemoveSourceFiles, s.RemoveSourceFiles)
	if err != nil {
		return rc, err
	}
	policy, err := importer.ParseFailurePolicy(s.FailurePolicy)
	if err != nil {
		return rc, err
	}
	rc.opts = importer.Options{
		Variant:          variant,
		Production:       s.IsProduction(),
		RemoveSource:     removeSource,
		DataDir:          s.DataDir,
		ProjectName:      s.ProjectName,
		DatasetName:      s.DatasetName,
		Policy:           policy,
		Link:             s.LinkUrl,
		UseContextTarget: useContextTarget,
	}

	switch {
	case variant != importer.VariantLink && ic.SourcePath == "":
		if variant == importer.VariantFolder {
			return rc, errors.New("missing source folder: set FOLDER or --folder")
		}
		return rc, errors.New("missing source file: set FILE or --file")
	case rc.opts.Production && ic.TeamID == 0 && variant != importer.VariantLink:
		return rc, errors.New("missing TEAM_ID: required to read Team Files in production")
	case !useContextTarget && ic.ProjectID == nil && ic.WorkspaceID == 0:
		return rc, errors.New("missing WORKSPACE_ID: required to create a project")
	}
	return rc, nil
}

func buildContext(s utils.Settings, variant importer.Variant) (importer.ImportContext, error) {
	ic := importer.ImportContext{SourcePath: s.File}
	if variant == importer.VariantFolder {
		ic.SourcePath = s.Folder
	}

	var err error
	if ic.TeamID, err = utils.ParseID(utils.TeamId, s.TeamId); err != nil {
		return ic, err
	}
	if ic.WorkspaceID, err = utils.ParseID(utils.WorkspaceId, s.WorkspaceId); err != nil {
		return ic, err
	}
	if ic.ProjectID, err = utils.ParseOptionalID(utils.ProjectId, s.ProjectId); err != nil {
		return ic, err
	}
	if ic.DatasetID, err = utils.ParseOptionalID(utils.DatasetId, s.DatasetId); err != nil {
		return ic, err
	}
	if ic.TaskID, err = utils.ParseOptionalID(utils.TaskId, s.TaskId); err != nil {
		return ic, err
	}
	return ic, nil
}
