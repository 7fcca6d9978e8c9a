// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

// Config is everything the services need to reach the platform.
// It is built once by the command layer; nothing in here reads viper or INI.
type Config struct {
	Core CoreConfig
	S3   S3Config
}

type CoreConfig struct {
	BaseURL           string
	APIVersion        string
	AccessToken       string
	BasicAuthUsername string
	BasicAuthPassword string
}

// S3Config points at the object store backing Team Files.
type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
	Bucket      string
}
