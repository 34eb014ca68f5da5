// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/terramate-io/rustversion/date"
	"github.com/terramate-io/rustversion/errors"
	"github.com/terramate-io/rustversion/exit"
	"github.com/terramate-io/rustversion/features"
	"github.com/terramate-io/rustversion/report"
	"github.com/terramate-io/rustversion/rustc"
	"github.com/terramate-io/rustversion/version"
	"github.com/terramate-io/rustversion/versions"
)

const formatText = "text"

func (c *cli) detect() error {
	flags := c.parsedArgs.Detect.Rustc
	if len(flags) == 0 {
		flags = []string{""}
	}

	opts := make([]rustc.Options, len(flags))
	for i, flag := range flags {
		opts[i] = c.toolchain(flag)
	}

	log.Debug().
		Str("action", "cli.detect()").
		Int("toolchains", len(opts)).
		Msg("detecting toolchains")

	vs, err := rustc.DetectAll(context.Background(), c.runner, opts)
	if err != nil {
		return err
	}

	if c.parsedArgs.Detect.Format != formatText {
		return report.New(vs...).Write(c.stdout, c.parsedArgs.Detect.Format)
	}

	if len(vs) == 1 {
		c.output.Println(vs[0].String())
		return nil
	}
	for i, v := range vs {
		name := opts[i].Rustc
		if name == "" {
			name = rustc.DefaultRustc
		}
		c.output.Fieldln(name, v)
	}
	return nil
}

func (c *cli) parse() error {
	out, err := io.ReadAll(c.stdin)
	if err != nil {
		return errors.E(err, "reading stdin")
	}

	v, err := rustc.Parse(string(out))
	if err != nil {
		return err
	}

	if c.parsedArgs.Parse.Format != formatText {
		return report.New(v).Write(c.stdout, c.parsedArgs.Parse.Format)
	}
	c.output.Println(v.String())
	return nil
}

func (c *cli) printCfg() error {
	v, err := rustc.Detect(context.Background(), c.runner, c.toolchain(c.parsedArgs.Cfg.Rustc))
	if err != nil {
		return err
	}
	for _, name := range features.Names(features.Enabled(v)) {
		c.output.Println(name)
	}
	return nil
}

// predicate is a named check over the detected version.
// Nightly predicates never hold for stable and beta toolchains.
type predicate struct {
	name    string
	nightly bool
	test    func(version.Rust) (bool, error)
}

func (c *cli) predicates() ([]predicate, error) {
	args := c.parsedArgs.Check
	errs := errors.L()

	var preds []predicate
	if args.Since != "" {
		spec, err := version.ParseSpec(args.Since)
		errs.Append(err)
		preds = append(preds, predicate{
			name: "since " + args.Since,
			test: func(v version.Rust) (bool, error) { return v.IsSinceStable(spec), nil },
		})
	}
	if args.Before != "" {
		spec, err := version.ParseSpec(args.Before)
		errs.Append(err)
		preds = append(preds, predicate{
			name: "before " + args.Before,
			test: func(v version.Rust) (bool, error) { return v.IsBeforeStable(spec), nil },
		})
	}
	if args.SinceNightly != "" {
		d, err := date.Parse(args.SinceNightly)
		errs.Append(err)
		preds = append(preds, predicate{
			name:    "since nightly " + args.SinceNightly,
			nightly: true,
			test:    func(v version.Rust) (bool, error) { return v.IsSinceNightly(d), nil },
		})
	}
	if args.BeforeNightly != "" {
		d, err := date.Parse(args.BeforeNightly)
		errs.Append(err)
		preds = append(preds, predicate{
			name:    "before nightly " + args.BeforeNightly,
			nightly: true,
			test:    func(v version.Rust) (bool, error) { return v.IsBeforeNightly(d), nil },
		})
	}
	if args.Channel != "" {
		switch args.Channel {
		case "stable", "beta", "nightly", "dev":
		default:
			errs.Append(errors.E("invalid channel %q", args.Channel))
		}
		preds = append(preds, predicate{
			name: "channel " + args.Channel,
			test: func(v version.Rust) (bool, error) { return v.Channel.Name() == args.Channel, nil },
		})
	}
	if args.Constraint != "" {
		preds = append(preds, predicate{
			name: "constraint " + args.Constraint,
			test: func(v version.Rust) (bool, error) {
				return versions.Match(v, args.Constraint, args.AllowPrereleases)
			},
		})
	}

	if err := errs.AsError(); err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		return nil, errors.E(ErrNoPredicate,
			"use --since, --before, --since-nightly, --before-nightly, --channel or --constraint")
	}
	return preds, nil
}

func (c *cli) check() (exit.Status, error) {
	preds, err := c.predicates()
	if err != nil {
		return exit.Failed, err
	}

	v, err := rustc.Detect(context.Background(), c.runner, c.toolchain(c.parsedArgs.Check.Rustc))
	if err != nil {
		return exit.Failed, err
	}

	logger := log.With().
		Str("action", "cli.check()").
		Stringer("version", v).
		Logger()

	c.output.Fieldln("version", v)

	status := exit.OK
	for _, pred := range preds {
		ok, err := pred.test(v)
		if err != nil {
			return exit.Failed, err
		}

		logger.Debug().
			Str("predicate", pred.name).
			Bool("satisfied", ok).
			Msg("evaluated predicate")

		if pred.nightly && (v.IsStable() || v.IsBeta()) {
			c.errout.Warnln(fmt.Sprintf("%s never holds for a %s toolchain",
				pred.name, v.Channel.Name()))
		}

		c.output.Fieldln(pred.name, ok)
		if !ok {
			status = exit.Unsatisfied
		}
	}

	if status == exit.OK {
		c.output.Successln("satisfied")
	} else {
		c.output.Failureln(fmt.Sprintf("not satisfied by %s", v))
	}
	return status, nil
}
