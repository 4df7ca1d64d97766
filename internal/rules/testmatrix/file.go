package testmatrix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FuegoFro/rules-apple/pkgs/rule"
)

// specFile is the JSON form of a Spec.
type specFile struct {
	BaseName       string   `json:"base_name"`
	Script         string   `json:"script"`
	Configurations Configs  `json:"configurations"`
	CommonArgs     []string `json:"common_args,omitempty"`
	Data           []string `json:"data,omitempty"`
	Deps           []string `json:"deps,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Shards         int      `json:"shards,omitempty"`
}

// ParseFile reads and parses a test-matrix spec from either provided data
// or a file path. If data is non-nil, it is used directly and the file
// parameter is ignored. Otherwise, the file is read from the provided path.
// Configuration order in the JSON document is preserved.
func ParseFile(file string, data []byte) (*Spec, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader = f
	}

	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()

	var sf specFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse test matrix %s: %w", file, err)
	}

	spec := &Spec{
		BaseName:   sf.BaseName,
		Script:     rule.Artifact(sf.Script),
		Configs:    sf.Configurations,
		CommonArgs: sf.CommonArgs,
		ExtraDeps:  sf.Deps,
		Tags:       sf.Tags,
		Shards:     sf.Shards,
	}
	for _, d := range sf.Data {
		spec.DataDeps = append(spec.DataDeps, rule.Artifact(d))
	}
	return spec, nil
}
