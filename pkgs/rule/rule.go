// Package rule defines the declaration primitives consumed by a build
// execution engine: actions with explicit input and output artifacts, test
// targets, and test suites, plus the Registrar interface that receives them.
//
// The package owns no execution semantics. A Registrar implementation is
// expected to schedule, cache and run whatever is declared; this package
// only gives the declarations a shape.
package rule

import "path"

// Artifact is a file declared as an action input or output. The path is
// slash-separated and relative to the execution root.
type Artifact string

// Base returns the last element of the artifact path.
func (a Artifact) Base() string { return path.Base(string(a)) }

// Dir returns the artifact path with the last element removed.
func (a Artifact) Dir() string { return path.Dir(string(a)) }

func (a Artifact) String() string { return string(a) }

// Action declares one invocation of an executable together with every file
// it reads and every file it is expected to produce. An executor treats a
// missing declared output as a fatal consistency error.
type Action struct {
	// Mnemonic is a short opaque label identifying the action kind in
	// diagnostics.
	Mnemonic string

	// Executable is the program to invoke. It may be left empty, in which
	// case the executor resolves it from its own configuration.
	Executable string

	Args    []string
	Inputs  []Artifact
	Outputs []Artifact
}

// Test declares one runnable test target.
type Test struct {
	Name   string
	Args   []string
	Data   []Artifact
	Deps   []string
	Tags   []string
	Shards int
}

// Suite declares a named aggregation of test targets.
type Suite struct {
	Name  string
	Tests []string
}

// Registrar receives build declarations. Implementations decide what to do
// with them: record them, print them, or execute them.
type Registrar interface {
	DeclareAction(a Action) error
	DeclareTest(t Test) error
	DeclareSuite(s Suite) error
}
