// Package manifest loads import manifests: YAML or JSON files in the Koji
// metadata layout that describe one build import.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/kojiimport/internal/config"
	"github.com/dbsmedya/kojiimport/internal/wire"
)

// Load reads the manifest at path. The format follows the file extension
// (yaml, yml, json); files without one are read as YAML. ${VAR} references
// in build identity fields and output filenames are expanded.
//
// Scalars are decoded straight into the string fields of wire.Document, so
// unquoted values such as "version: 1.10" or "checksum: 0123456" keep their
// source text.
func Load(path string) (*wire.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	doc, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes manifest bytes in the given format ("yaml" or "json").
func Parse(data []byte, format string) (*wire.Document, error) {
	var doc wire.Document
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q (must be yaml or json)", format)
	}

	expand(&doc)
	return &doc, nil
}

func formatOf(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "", "yml", "yaml":
		return "yaml"
	default:
		return ext
	}
}

func expand(doc *wire.Document) {
	if b := doc.Build; b != nil {
		b.Name = config.ExpandEnv(b.Name)
		b.Version = config.ExpandEnv(b.Version)
		b.Release = config.ExpandEnv(b.Release)
		b.Source = config.ExpandEnv(b.Source)
		b.Owner = config.ExpandEnv(b.Owner)
	}
	for i := range doc.Output {
		doc.Output[i].Filename = config.ExpandEnv(doc.Output[i].Filename)
	}
}
