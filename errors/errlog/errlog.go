// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package errlog provides functions to log rustversion errors nicely and
// in a consistent manner.
package errlog

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/rs/zerolog"
	"github.com/terramate-io/rustversion/errors"
)

// Debug logs the error with the debug level if the error is not nil.
// Each item of an error list is logged on its own entry before msg.
// If the error is nil this is a no-op.
func Debug(logger zerolog.Logger, msg string, err error) {
	if err == nil {
		return
	}

	logerrs(logger, zerolog.DebugLevel, msg, err)
}

func logerrs(logger zerolog.Logger, level zerolog.Level, msg string, err error) {
	var list *errors.List
	if errors.As(err, &list) {
		for _, err := range list.Errors() {
			logerr(logger, level, "", err)
		}
		logger.WithLevel(level).Msg(msg)
		return
	}

	logerr(logger, level, msg, err)
}

func logerr(
	logger zerolog.Logger,
	level zerolog.Level,
	msg string,
	err error,
) {
	var rverr *errors.Error
	if !errors.As(err, &rverr) {
		logger.WithLevel(level).Msgf("%s: %s", msg, err)
		return
	}

	if rverr.FileRange != (hcl.Range{}) {
		logger = logger.With().
			Stringer("range", rverr.FileRange).
			Logger()
	}

	msgparts := []string{}

	if msg != "" {
		msgparts = append(msgparts, msg)
	}
	if rverr.Kind != "" {
		msgparts = append(msgparts, string(rverr.Kind))
	}
	if rverr.Description != "" {
		msgparts = append(msgparts, rverr.Description)
	}
	if rverr.Err != nil {
		msgparts = append(msgparts, rverr.Err.Error())
	}

	logger.WithLevel(level).Msg(strings.Join(msgparts, ": "))
}
