package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// descriptorFile is the JSON form of a Descriptor. The field names match
// the generator's flag names.
type descriptorFile struct {
	Name             string   `json:"name"`
	SDK              string   `json:"sdk"`
	MinimumOSVersion string   `json:"minimum_os_version"`
	LibraryType      string   `json:"libtype"`
	Architectures    []string `json:"archs"`
	SourceFile       string   `json:"source_file,omitempty"`
	HeaderFiles      []string `json:"header_files,omitempty"`
}

// ParseFile reads and parses a framework descriptor from either provided
// data or a file path. If data is non-nil, it is used directly and the file
// parameter is ignored. Otherwise, the file is read from the provided path.
func ParseFile(file string, data []byte) (*Descriptor, error) {
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

	var df descriptorFile
	if err := dec.Decode(&df); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor %s: %w", file, err)
	}

	return &Descriptor{
		Name:             df.Name,
		SDK:              df.SDK,
		MinimumOSVersion: df.MinimumOSVersion,
		LibraryType:      LibraryType(df.LibraryType),
		Architectures:    df.Architectures,
		SourceFile:       df.SourceFile,
		HeaderFiles:      df.HeaderFiles,
	}, nil
}
