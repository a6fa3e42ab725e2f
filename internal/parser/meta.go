package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gobench/internal/benchmark"

	"gopkg.in/yaml.v3"
)

// ErrNoMeta is returned by LoadMeta when the directory has no _meta.yml.
var ErrNoMeta = errors.New("no _meta.yml")

// LoadMeta decodes dir/_meta.yml. When the file is absent it returns a Meta
// named after the directory together with ErrNoMeta.
func LoadMeta(dir string) (benchmark.Meta, error) {
	meta := benchmark.Meta{Name: filepath.Base(dir)}

	data, err := os.ReadFile(filepath.Join(dir, MetaFile))
	if errors.Is(err, fs.ErrNotExist) {
		return meta, ErrNoMeta
	}
	if err != nil {
		return meta, fmt.Errorf("failed to read meta file: %w", err)
	}

	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to decode meta file: %w", err)
	}
	if meta.Name == "" {
		meta.Name = filepath.Base(dir)
	}
	return meta, nil
}

// DescriptionFor returns the _meta.yml description of an implementation.
func DescriptionFor(meta benchmark.Meta, implementation string) string {
	for _, m := range meta.Meta {
		if m.Implementation == implementation {
			return m.Description
		}
	}
	return ""
}
