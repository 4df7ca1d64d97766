// Copyright (c) 2026 The rules-apple Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package framework derives the complete file layout of a framework bundle
// from a sparse descriptor and wires it into a single generator action.
//
// The derivation is a pure function: the same descriptor always yields the
// same input set, output set and argument list. Nothing here performs I/O;
// declaring the action to an executor is the caller's concern.
package framework

import (
	"github.com/FuegoFro/rules-apple/pkgs/rule"
)

// LibraryType selects how the framework binary is linked.
type LibraryType string

const (
	Dynamic LibraryType = "dynamic"
	Static  LibraryType = "static"
)

// Mnemonic identifies the generator action in diagnostics.
const Mnemonic = "GenerateFramework"

// DefaultSource is used when a descriptor does not name a source file.
const DefaultSource = "Framework.m"

// Descriptor specifies one framework bundle to generate. It is fully
// specified at configuration time and immutable thereafter.
type Descriptor struct {
	// Name is the bundle directory stem and the binary file name.
	Name string

	// SDK and MinimumOSVersion are passed through to the generator
	// unmodified; the deriver does not interpret them.
	SDK              string
	MinimumOSVersion string

	LibraryType LibraryType

	// Architectures to build for, in order. Must be non-empty.
	// Duplicates are passed through unchanged.
	Architectures []string

	// SourceFile is the single input source. Empty means DefaultSource.
	SourceFile string

	// HeaderFiles are the input headers, in order. May be empty.
	HeaderFiles []string
}

// Layout is the derived output file layout of a framework bundle. It is
// never hand-specified; it is recomputed from the descriptor on demand.
type Layout struct {
	BundleDir rule.Artifact // <name>.framework
	Binary    rule.Artifact // <name>.framework/<name>

	// Headers holds one artifact per input header, order-preserving,
	// at Headers/<basename>.
	Headers []rule.Artifact

	// The three outputs below are always generated, independent of the
	// input headers.
	UmbrellaHeader rule.Artifact // Headers/<name>.h
	InfoPlist      rule.Artifact // Info.plist
	ModuleMap      rule.Artifact // Modules/module.modulemap
}

// Layout computes the bundle layout for d. It performs no validation; see
// Derive for the validating entry point.
func (d Descriptor) Layout() Layout {
	bundle := rule.Artifact(d.Name + ".framework")
	l := Layout{
		BundleDir:      bundle,
		Binary:         bundle + rule.Artifact("/"+d.Name),
		UmbrellaHeader: bundle + rule.Artifact("/Headers/"+d.Name+".h"),
		InfoPlist:      bundle + "/Info.plist",
		ModuleMap:      bundle + "/Modules/module.modulemap",
	}
	for _, hdr := range d.HeaderFiles {
		base := rule.Artifact(hdr).Base()
		l.Headers = append(l.Headers, bundle+rule.Artifact("/Headers/"+base))
	}
	return l
}

// Derivation is the result of deriving a descriptor: the bundle layout, the
// declared input and output sets, and the generator argument list.
type Derivation struct {
	Layout  Layout
	Inputs  []rule.Artifact
	Outputs []rule.Artifact
	Args    []string
}

// Derive validates d, resolves defaulted inputs and computes the full
// derivation. Precondition violations are reported as *rule.ConfigError
// before anything is derived.
//
// The output set always contains the binary, one header per input header,
// the umbrella header, Info.plist and the module map. The generator must
// produce every one of them; executors treat a missing declared output as a
// fatal consistency error, so none of the always-generated paths may be
// omitted here even though they have no corresponding input.
func Derive(d Descriptor) (*Derivation, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	if d.SourceFile == "" {
		d.SourceFile = DefaultSource
	}

	layout := d.Layout()

	outputs := make([]rule.Artifact, 0, len(layout.Headers)+4)
	outputs = append(outputs, layout.Binary)
	outputs = append(outputs, layout.Headers...)
	outputs = append(outputs, layout.UmbrellaHeader, layout.InfoPlist, layout.ModuleMap)

	inputs := make([]rule.Artifact, 0, len(d.HeaderFiles)+1)
	inputs = append(inputs, rule.Artifact(d.SourceFile))
	for _, hdr := range d.HeaderFiles {
		inputs = append(inputs, rule.Artifact(hdr))
	}

	args := []string{
		"--name", d.Name,
		"--sdk", d.SDK,
		"--minimum_os_version", d.MinimumOSVersion,
		"--libtype", string(d.LibraryType),
	}
	for _, arch := range d.Architectures {
		args = append(args, "--arch", arch)
	}
	args = append(args, "--framework_path", layout.Binary.Dir())
	args = append(args, "--source_file", d.SourceFile)
	for _, hdr := range d.HeaderFiles {
		args = append(args, "--header_file", hdr)
	}

	return &Derivation{
		Layout:  layout,
		Inputs:  inputs,
		Outputs: outputs,
		Args:    args,
	}, nil
}

// Rule derives d and declares exactly one generator action on reg. A failed
// derivation declares nothing.
func Rule(reg rule.Registrar, d Descriptor) error {
	der, err := Derive(d)
	if err != nil {
		return err
	}
	return reg.DeclareAction(rule.Action{
		Mnemonic: Mnemonic,
		Args:     der.Args,
		Inputs:   der.Inputs,
		Outputs:  der.Outputs,
	})
}

func validate(d Descriptor) error {
	if d.Name == "" {
		return rule.Configf("framework name must not be empty")
	}
	if len(d.Architectures) == 0 {
		return rule.Configf("framework %s: at least one architecture required", d.Name)
	}
	switch d.LibraryType {
	case Dynamic, Static:
	default:
		return rule.Configf("framework %s: invalid library type %q", d.Name, d.LibraryType)
	}
	// Two headers with the same basename would silently map to the same
	// declared output, so reject the collision up front.
	seen := make(map[string]string, len(d.HeaderFiles))
	for _, hdr := range d.HeaderFiles {
		base := rule.Artifact(hdr).Base()
		if prev, ok := seen[base]; ok {
			return rule.Configf("framework %s: header basename collision: %s and %s", d.Name, prev, hdr)
		}
		seen[base] = hdr
	}
	return nil
}
