package framework

import (
	"reflect"
	"testing"

	"github.com/FuegoFro/rules-apple/pkgs/rule"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want Layout
	}{
		{
			name: "no headers",
			desc: Descriptor{Name: "Core"},
			want: Layout{
				BundleDir:      "Core.framework",
				Binary:         "Core.framework/Core",
				UmbrellaHeader: "Core.framework/Headers/Core.h",
				InfoPlist:      "Core.framework/Info.plist",
				ModuleMap:      "Core.framework/Modules/module.modulemap",
			},
		},
		{
			name: "headers mapped by basename",
			desc: Descriptor{Name: "Net", HeaderFiles: []string{"include/net.h", "api.h"}},
			want: Layout{
				BundleDir: "Net.framework",
				Binary:    "Net.framework/Net",
				Headers: []rule.Artifact{
					"Net.framework/Headers/net.h",
					"Net.framework/Headers/api.h",
				},
				UmbrellaHeader: "Net.framework/Headers/Net.h",
				InfoPlist:      "Net.framework/Info.plist",
				ModuleMap:      "Net.framework/Modules/module.modulemap",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.desc.Layout()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Layout() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDerive(t *testing.T) {
	der, err := Derive(Descriptor{
		Name:             "Foo",
		SDK:              "iphoneos",
		MinimumOSVersion: "12.0",
		LibraryType:      Dynamic,
		Architectures:    []string{"arm64"},
		SourceFile:       "a.m",
		HeaderFiles:      []string{"a.h"},
	})
	if err != nil {
		t.Fatalf("Derive() returned error: %v", err)
	}

	wantOutputs := []rule.Artifact{
		"Foo.framework/Foo",
		"Foo.framework/Headers/a.h",
		"Foo.framework/Headers/Foo.h",
		"Foo.framework/Info.plist",
		"Foo.framework/Modules/module.modulemap",
	}
	if !reflect.DeepEqual(der.Outputs, wantOutputs) {
		t.Errorf("Derive() outputs = %v, want %v", der.Outputs, wantOutputs)
	}

	wantInputs := []rule.Artifact{"a.m", "a.h"}
	if !reflect.DeepEqual(der.Inputs, wantInputs) {
		t.Errorf("Derive() inputs = %v, want %v", der.Inputs, wantInputs)
	}

	wantArgs := []string{
		"--name", "Foo",
		"--sdk", "iphoneos",
		"--minimum_os_version", "12.0",
		"--libtype", "dynamic",
		"--arch", "arm64",
		"--framework_path", "Foo.framework",
		"--source_file", "a.m",
		"--header_file", "a.h",
	}
	if !reflect.DeepEqual(der.Args, wantArgs) {
		t.Errorf("Derive() args = %v, want %v", der.Args, wantArgs)
	}
}

func TestDerive_defaultSource(t *testing.T) {
	der, err := Derive(Descriptor{
		Name:          "Foo",
		SDK:           "iphoneos",
		LibraryType:   Static,
		Architectures: []string{"arm64"},
	})
	if err != nil {
		t.Fatalf("Derive() returned error: %v", err)
	}
	if want := []rule.Artifact{DefaultSource}; !reflect.DeepEqual(der.Inputs, want) {
		t.Errorf("Derive() inputs = %v, want %v", der.Inputs, want)
	}
}

func TestDerive_duplicateArchsPreserved(t *testing.T) {
	der, err := Derive(Descriptor{
		Name:          "Foo",
		LibraryType:   Dynamic,
		Architectures: []string{"arm64", "x86_64", "arm64"},
	})
	if err != nil {
		t.Fatalf("Derive() returned error: %v", err)
	}
	var archs []string
	for i := 0; i < len(der.Args)-1; i++ {
		if der.Args[i] == "--arch" {
			archs = append(archs, der.Args[i+1])
		}
	}
	want := []string{"arm64", "x86_64", "arm64"}
	if !reflect.DeepEqual(archs, want) {
		t.Errorf("Derive() arch flags = %v, want %v", archs, want)
	}
}

func TestDerive_deterministic(t *testing.T) {
	desc := Descriptor{
		Name:             "Foo",
		SDK:              "macosx",
		MinimumOSVersion: "11.0",
		LibraryType:      Dynamic,
		Architectures:    []string{"arm64", "x86_64"},
		HeaderFiles:      []string{"a.h", "sub/b.h"},
	}
	first, err := Derive(desc)
	if err != nil {
		t.Fatalf("first Derive() returned error: %v", err)
	}
	second, err := Derive(desc)
	if err != nil {
		t.Fatalf("second Derive() returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Derive() not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDerive_errors(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
	}{
		{
			name: "empty name",
			desc: Descriptor{LibraryType: Dynamic, Architectures: []string{"arm64"}},
		},
		{
			name: "empty architectures",
			desc: Descriptor{Name: "Foo", LibraryType: Dynamic},
		},
		{
			name: "invalid library type",
			desc: Descriptor{Name: "Foo", LibraryType: "shared", Architectures: []string{"arm64"}},
		},
		{
			name: "header basename collision",
			desc: Descriptor{
				Name:          "Foo",
				LibraryType:   Dynamic,
				Architectures: []string{"arm64"},
				HeaderFiles:   []string{"a/common.h", "b/common.h"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			der, err := Derive(tt.desc)
			if err == nil {
				t.Fatal("Derive() succeeded, want configuration error")
			}
			if !rule.IsConfig(err) {
				t.Errorf("Derive() error = %v, want *rule.ConfigError", err)
			}
			if der != nil {
				t.Errorf("Derive() returned a derivation alongside error: %+v", der)
			}
		})
	}
}

func TestRule(t *testing.T) {
	var rec rule.Recorder
	err := Rule(&rec, Descriptor{
		Name:          "Foo",
		SDK:           "iphoneos",
		LibraryType:   Dynamic,
		Architectures: []string{"arm64"},
	})
	if err != nil {
		t.Fatalf("Rule() returned error: %v", err)
	}
	if len(rec.Actions) != 1 {
		t.Fatalf("Rule() declared %d actions, want 1", len(rec.Actions))
	}
	if got := rec.Actions[0].Mnemonic; got != Mnemonic {
		t.Errorf("Rule() mnemonic = %q, want %q", got, Mnemonic)
	}
}

func TestRule_failureDeclaresNothing(t *testing.T) {
	var rec rule.Recorder
	err := Rule(&rec, Descriptor{Name: "Foo", LibraryType: Dynamic})
	if err == nil {
		t.Fatal("Rule() succeeded, want configuration error")
	}
	if !rec.Empty() {
		t.Errorf("Rule() left partial declarations behind: %+v", rec)
	}
}
