// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

//go:build tools

package tools

import (
	_ "github.com/google/addlicense"
	_ "golang.org/x/tools/cmd/goimports"
)
