package internal

import (
	"strings"
	"testing"

	"github.com/FuegoFro/rules-apple/internal/rules/framework"
	"github.com/FuegoFro/rules-apple/internal/rules/testmatrix"
)

func TestPrintDerivation(t *testing.T) {
	der, err := framework.Derive(framework.Descriptor{
		Name:             "Foo",
		SDK:              "iphoneos",
		MinimumOSVersion: "12.0",
		LibraryType:      framework.Dynamic,
		Architectures:    []string{"arm64"},
		SourceFile:       "a.m",
		HeaderFiles:      []string{"a.h"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	printDerivation(&sb, der)
	out := sb.String()

	for _, want := range []string{
		"inputs:",
		"  a.m",
		"outputs:",
		"  Foo.framework/Modules/module.modulemap",
		"args:",
		"  --framework_path",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printDerivation output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintExpansion(t *testing.T) {
	var configs testmatrix.Configs
	configs.Set("sim", "--x=1")
	configs.Set("device", "--y=2")

	exp, err := testmatrix.Expand(testmatrix.Spec{
		BaseName: "t",
		Script:   "t.sh",
		Configs:  configs,
	}, testmatrix.ShardingDefault)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	printExpansion(&sb, exp)
	out := sb.String()

	for _, want := range []string{
		"test t.sim",
		"test t.device",
		"suite t: t.sim t.device",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printExpansion output missing %q:\n%s", want, out)
		}
	}
}
