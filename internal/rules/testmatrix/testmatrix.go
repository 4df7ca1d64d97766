// Copyright (c) 2026 The rules-apple Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testmatrix expands a compact test-matrix specification into one
// test target per configuration plus an umbrella suite aggregating them.
//
// Like the framework deriver, the expansion is pure and total: the same
// spec yields the same targets in the same order, and a precondition
// violation produces zero targets rather than a partial set.
package testmatrix

import (
	"github.com/FuegoFro/rules-apple/pkgs/rule"
)

// Every generated target runs on a macOS host and needs the shared shell
// test machinery alongside its own script.
const RequiresDarwinTag = "requires-darwin"

var fixedData = []rule.Artifact{
	"test/apple_shell_testutils.sh",
	"tools/unittest.bash",
	"test/testdata/provisioning/integration_testing.mobileprovision",
	"test/testdata/provisioning/BUILD",
}

// Spec describes a family of shell tests that share one script and differ
// only in the extra arguments passed per configuration.
type Spec struct {
	// BaseName names the suite; each target is BaseName + "." + config.
	BaseName string

	// Script is the executable test script shared by every configuration.
	Script rule.Artifact

	// Configs maps configuration name to extra arguments. Must be
	// non-empty.
	Configs Configs

	// CommonArgs are passed to every configuration, before its extra
	// arguments.
	CommonArgs []string

	// DataDeps, ExtraDeps and Tags are shared by all generated targets.
	DataDeps  []rule.Artifact
	ExtraDeps []string
	Tags      []string

	// Shards is the requested shard count. It only takes effect when
	// sharding is explicitly enabled; see ResolveShards.
	Shards int
}

// Expansion is the result of expanding a Spec: the generated test targets
// in configuration order and the suite aggregating them.
type Expansion struct {
	Tests []rule.Test
	Suite rule.Suite
}

// Expand validates spec and generates one test target per configuration, in
// insertion order, followed by one suite named spec.BaseName whose members
// are the generated target names in the same order.
func Expand(spec Spec, mode Sharding) (*Expansion, error) {
	if spec.BaseName == "" {
		return nil, rule.Configf("test matrix: base name must not be empty")
	}
	if spec.Configs.Len() == 0 {
		return nil, rule.Configf("test matrix %s: at least one configuration required", spec.BaseName)
	}

	shards := ResolveShards(mode, spec.Shards)
	data := unionData(spec.Script, spec.DataDeps)
	tags := unionTags(spec.Tags)

	exp := &Expansion{
		Suite: rule.Suite{Name: spec.BaseName},
	}
	for _, config := range spec.Configs.Names() {
		extraArgs, _ := spec.Configs.Get(config)

		args := make([]string, 0, 1+len(spec.CommonArgs)+len(extraArgs))
		args = append(args, spec.Script.String())
		args = append(args, spec.CommonArgs...)
		args = append(args, extraArgs...)

		name := spec.BaseName + "." + config
		exp.Tests = append(exp.Tests, rule.Test{
			Name:   name,
			Args:   args,
			Data:   data,
			Deps:   spec.ExtraDeps,
			Tags:   tags,
			Shards: shards,
		})
		exp.Suite.Tests = append(exp.Suite.Tests, name)
	}
	return exp, nil
}

// Rule expands spec and declares every generated target and the suite on
// reg. A failed expansion declares nothing.
func Rule(reg rule.Registrar, spec Spec, mode Sharding) error {
	exp, err := Expand(spec, mode)
	if err != nil {
		return err
	}
	for _, t := range exp.Tests {
		if err := reg.DeclareTest(t); err != nil {
			return err
		}
	}
	return reg.DeclareSuite(exp.Suite)
}

// unionData combines the script, the fixed auxiliary files and the caller's
// data deps, dropping duplicates while keeping first-seen order.
func unionData(script rule.Artifact, extra []rule.Artifact) []rule.Artifact {
	out := make([]rule.Artifact, 0, 1+len(fixedData)+len(extra))
	seen := make(map[rule.Artifact]bool, 1+len(fixedData)+len(extra))
	add := func(a rule.Artifact) {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	add(script)
	for _, a := range fixedData {
		add(a)
	}
	for _, a := range extra {
		add(a)
	}
	return out
}

func unionTags(extra []string) []string {
	out := []string{RequiresDarwinTag}
	for _, tag := range extra {
		if tag != RequiresDarwinTag {
			out = append(out, tag)
		}
	}
	return out
}
