// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

//go:build !rustversion_nochecks

// Package checks controls the eager validation performed by the date and
// version constructors. Building with the rustversion_nochecks tag disables
// it, making the constructors accept any value.
package checks

// Enabled tells if constructors validate their arguments.
const Enabled = true
