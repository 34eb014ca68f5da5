// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package rustversion

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var toolVersion string

// Version of the rustversion tool.
func Version() string {
	return strings.TrimSpace(toolVersion)
}
