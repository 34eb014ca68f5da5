// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

// Package cliconfig loads the optional user configuration of the
// rustversion CLI.
package cliconfig

import (
	"maps"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/terramate-io/rustversion/errors"
	"github.com/zclconf/go-cty/cty"
)

// ConfigPathEnv overrides the location of the configuration file.
const ConfigPathEnv = "RUSTVERSION_CLI_CONFIG_FILE"

const (
	// ErrHCLSyntax indicates the configuration file is not valid HCL.
	ErrHCLSyntax errors.Kind = "HCL syntax error"

	// ErrEval indicates an attribute expression could not be evaluated.
	ErrEval errors.Kind = "evaluating attribute"

	// ErrInvalidAttributeType indicates the attribute has an invalid type.
	ErrInvalidAttributeType errors.Kind = "attribute with invalid type"

	// ErrInvalidAttributeValue indicates the attribute has an invalid value.
	ErrInvalidAttributeValue errors.Kind = "attribute with invalid value"

	// ErrUnrecognizedAttribute indicates the attribute is unrecognized.
	ErrUnrecognizedAttribute errors.Kind = "unrecognized attribute"

	// ErrRead indicates the configuration file exists but could not be read.
	ErrRead errors.Kind = "reading CLI configuration"
)

// Config is the evaluated CLI configuration options.
// Empty fields were not configured.
type Config struct {
	Rustc        string
	RustcWrapper string
	LogLevel     string
}

// Load loads (parses and evaluates) the CLI configuration file.
// A missing file is not an error and gives an empty config.
func Load() (cfg Config, err error) {
	fname := os.Getenv(ConfigPathEnv)
	if fname == "" {
		var found bool
		fname, found = configAbsPath()
		if !found {
			return cfg, nil
		}
	}
	return LoadFrom(fname)
}

// LoadFrom loads the CLI configuration file from fname.
func LoadFrom(fname string) (Config, error) {
	logger := log.With().
		Str("action", "cliconfig.LoadFrom()").
		Str("file", fname).
		Logger()

	content, err := os.ReadFile(fname)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Trace().Msg("no CLI configuration file")
			return Config{}, nil
		}
		return Config{}, errors.E(ErrRead, err)
	}

	parser := hclparse.NewParser()
	hclfile, diags := parser.ParseHCL(content, fname)
	if diags.HasErrors() {
		return Config{}, errors.E(ErrHCLSyntax, diags, "failed to parse %s", fname)
	}

	body := hclfile.Body.(*hclsyntax.Body)
	if len(body.Blocks) > 0 {
		block := body.Blocks[0]
		return Config{}, errors.E(ErrHCLSyntax, block.DefRange(),
			"blocks are not supported, found %q", block.Type)
	}

	var cfg Config
	errs := errors.L()
	for _, name := range slices.Sorted(maps.Keys(body.Attributes)) {
		attr := body.Attributes[name]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			errs.Append(errors.E(ErrEval, attr.NameRange, diags,
				"failed to evaluate the %q attribute", name))
			continue
		}

		var target *string
		switch name {
		case "rustc":
			target = &cfg.Rustc
		case "rustc_wrapper":
			target = &cfg.RustcWrapper
		case "log_level":
			target = &cfg.LogLevel
		default:
			errs.Append(errors.E(ErrUnrecognizedAttribute, attr.NameRange, name))
			continue
		}

		if err := checkStrType(val, name); err != nil {
			errs.Append(errors.E(attr.SrcRange, err))
			continue
		}
		*target = val.AsString()
	}

	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			errs.Append(errors.E(ErrInvalidAttributeValue,
				body.Attributes["log_level"].SrcRange, err))
		}
	}

	if err := errs.AsError(); err != nil {
		return Config{}, err
	}

	logger.Debug().
		Str("rustc", cfg.Rustc).
		Str("rustc_wrapper", cfg.RustcWrapper).
		Str("log_level", cfg.LogLevel).
		Msg("loaded CLI configuration")

	return cfg, nil
}

func checkStrType(val cty.Value, name string) error {
	if !val.Type().Equals(cty.String) || val.IsNull() {
		return errors.E(
			ErrInvalidAttributeType,
			`%q attribute expects a string value but a value of type %s was given (value %s)`,
			name, val.Type().FriendlyName(), hclwrite.TokensForValue(val).Bytes(),
		)
	}
	return nil
}
