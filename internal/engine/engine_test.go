package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FuegoFro/rules-apple/pkgs/rule"
)

func testEngine(t *testing.T, dir string, force bool) *Engine {
	t.Helper()
	return New(Options{
		Generator: "unused",
		Dir:       dir,
		Force:     force,
		Log:       hclog.NewNullLogger(),
	})
}

func TestRun_producesDeclaredOutputs(t *testing.T) {
	dir := t.TempDir()
	eng := testEngine(t, dir, false)

	err := eng.DeclareAction(rule.Action{
		Mnemonic:   "GenerateFramework",
		Executable: "/bin/sh",
		Args:       []string{"-c", "touch Foo.framework/Foo Foo.framework/Info.plist"},
		Outputs: []rule.Artifact{
			"Foo.framework/Foo",
			"Foo.framework/Info.plist",
		},
	})
	require.NoError(t, err)
	require.NoError(t, eng.Run(context.Background()))

	assert.FileExists(t, filepath.Join(dir, "Foo.framework", "Foo"))
	assert.FileExists(t, filepath.Join(dir, "Foo.framework", "Info.plist"))
	assert.FileExists(t, filepath.Join(dir, cacheFile))
}

func TestRun_missingDeclaredOutput(t *testing.T) {
	dir := t.TempDir()
	eng := testEngine(t, dir, false)

	err := eng.DeclareAction(rule.Action{
		Mnemonic:   "GenerateFramework",
		Executable: "/bin/sh",
		Args:       []string{"-c", "touch Foo.framework/Foo"},
		Outputs: []rule.Artifact{
			"Foo.framework/Foo",
			"Foo.framework/Info.plist",
		},
	})
	require.NoError(t, err)

	err = eng.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not produced")
}

func TestRun_failedActionSurfaces(t *testing.T) {
	eng := testEngine(t, t.TempDir(), false)

	require.NoError(t, eng.DeclareAction(rule.Action{
		Mnemonic:   "GenerateFramework",
		Executable: "/bin/sh",
		Args:       []string{"-c", "exit 3"},
		Outputs:    []rule.Artifact{"Foo.framework/Foo"},
	}))
	err := eng.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GenerateFramework:Foo.framework/Foo")
}

func TestRun_cacheSkipsSecondRun(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")

	action := rule.Action{
		Mnemonic:   "GenerateFramework",
		Executable: "/bin/sh",
		Args:       []string{"-c", "echo x >> ran && touch Foo.framework/Foo"},
		Outputs:    []rule.Artifact{"Foo.framework/Foo"},
	}

	eng := testEngine(t, dir, false)
	require.NoError(t, eng.DeclareAction(action))
	require.NoError(t, eng.Run(context.Background()))

	// A fresh engine with the same declaration hits the cache.
	eng = testEngine(t, dir, false)
	require.NoError(t, eng.DeclareAction(action))
	require.NoError(t, eng.Run(context.Background()))

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data), "action should have run exactly once")

	// Force reruns it.
	eng = testEngine(t, dir, true)
	require.NoError(t, eng.DeclareAction(action))
	require.NoError(t, eng.Run(context.Background()))

	data, err = os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "x\nx\n", string(data))
}

func TestRun_testsAreRecordedNotExecuted(t *testing.T) {
	eng := testEngine(t, t.TempDir(), false)

	require.NoError(t, eng.DeclareTest(rule.Test{Name: "t.sim", Args: []string{"t.sh"}}))
	require.NoError(t, eng.DeclareSuite(rule.Suite{Name: "t", Tests: []string{"t.sim"}}))
	require.NoError(t, eng.Run(context.Background()))

	assert.Empty(t, eng.Actions())
}
