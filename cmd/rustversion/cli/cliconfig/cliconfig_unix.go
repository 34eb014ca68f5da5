// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package cliconfig

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Filename is the name of the CLI configuration file.
const Filename = ".rustversionrc"

// DirEnv is the environment variable holding the configuration directory.
const DirEnv = "HOME"

func configAbsPath() (string, bool) {
	home, err := homedir.Dir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, Filename), true
}
