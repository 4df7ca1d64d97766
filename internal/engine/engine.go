// Package engine executes declared actions locally. It is the stand-in for
// a real build-execution system: it receives declarations through the
// rule.Registrar interface, runs each action's executable with os/exec and
// verifies that every declared output was actually produced.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/FuegoFro/rules-apple/internal/env"
	"github.com/FuegoFro/rules-apple/internal/logging"
	"github.com/FuegoFro/rules-apple/pkgs/rule"
)

// Options configures an Engine.
type Options struct {
	// Generator is the executable used for actions that do not name one.
	// Empty means the environment's generator.
	Generator string

	// Dir is the execution root. Declared artifact paths are resolved
	// against it. Empty means the current directory.
	Dir string

	// Force reruns actions even when the run cache says they are
	// up to date.
	Force bool

	// Stdout and Stderr receive the action's output. Nil discards it.
	Stdout, Stderr io.Writer

	Log hclog.Logger
}

// Engine collects declarations and runs the declared actions. Test and
// suite declarations are recorded but not executed; running tests is a test
// runner's job, not the engine's.
type Engine struct {
	opts Options

	actions []rule.Action
	tests   []rule.Test
	suites  []rule.Suite
}

var _ rule.Registrar = (*Engine)(nil)

// New creates an Engine with the given options, filling in defaults.
func New(opts Options) *Engine {
	if opts.Generator == "" {
		opts.Generator = env.Generator()
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Log == nil {
		opts.Log = logging.New("engine", nil)
	}
	return &Engine{opts: opts}
}

func (e *Engine) DeclareAction(a rule.Action) error {
	e.actions = append(e.actions, a)
	return nil
}

func (e *Engine) DeclareTest(t rule.Test) error {
	e.tests = append(e.tests, t)
	return nil
}

func (e *Engine) DeclareSuite(s rule.Suite) error {
	e.suites = append(e.suites, s)
	return nil
}

// Actions returns the declared actions in declaration order.
func (e *Engine) Actions() []rule.Action { return e.actions }

// Run executes every declared action in declaration order. An action whose
// digest matches the run cache and whose outputs all exist is skipped
// unless Force is set.
func (e *Engine) Run(ctx context.Context) error {
	cache, err := loadCache(e.opts.Dir)
	if err != nil {
		cache = &runCache{}
	}

	for _, a := range e.actions {
		if err := e.runAction(ctx, cache, a); err != nil {
			return err
		}
	}

	for _, t := range e.tests {
		e.opts.Log.Debug("skipping test target, engine has no test runner", "test", t.Name)
	}
	return saveCache(e.opts.Dir, cache)
}

func (e *Engine) runAction(ctx context.Context, cache *runCache, a rule.Action) error {
	exe := a.Executable
	if exe == "" {
		exe = e.opts.Generator
	}
	key := actionKey(a)
	digest := actionDigest(exe, a)

	if !e.opts.Force {
		if entry, ok := cache.get(key); ok && entry.Digest == digest && e.outputsExist(a) {
			e.opts.Log.Info("up to date", "action", key)
			return nil
		}
	}

	for _, out := range a.Outputs {
		dir := filepath.Join(e.opts.Dir, out.Dir())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	e.opts.Log.Info("running", "action", key, "exe", exe)
	e.opts.Log.Debug("invocation", "args", a.Args)

	cmd := exec.CommandContext(ctx, exe, a.Args...)
	cmd.Dir = e.opts.Dir
	cmd.Stdout = e.opts.Stdout
	cmd.Stderr = e.opts.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("action %s failed: %w", key, err)
	}

	// The generator must write exactly the files the action declared.
	for _, out := range a.Outputs {
		if _, err := os.Stat(filepath.Join(e.opts.Dir, out.String())); err != nil {
			return fmt.Errorf("action %s: declared output %s was not produced", key, out)
		}
	}

	cache.set(key, &runEntry{Digest: digest, RunTime: time.Now()})
	return nil
}

func (e *Engine) outputsExist(a rule.Action) bool {
	for _, out := range a.Outputs {
		if _, err := os.Stat(filepath.Join(e.opts.Dir, out.String())); err != nil {
			return false
		}
	}
	return true
}

// actionKey identifies an action in the cache and in diagnostics by its
// mnemonic and primary output.
func actionKey(a rule.Action) string {
	if len(a.Outputs) == 0 {
		return a.Mnemonic
	}
	return a.Mnemonic + ":" + a.Outputs[0].String()
}

func actionDigest(exe string, a rule.Action) string {
	h := sha256.New()
	fmt.Fprintln(h, exe)
	for _, arg := range a.Args {
		fmt.Fprintln(h, arg)
	}
	for _, in := range a.Inputs {
		fmt.Fprintln(h, in)
	}
	for _, out := range a.Outputs {
		fmt.Fprintln(h, out)
	}
	return hex.EncodeToString(h.Sum(nil))
}
