package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sectionDecoder decodes one top-level YAML section into its Config field.
type sectionDecoder func(target *Config, node *yaml.Node) error

// sections maps the top-level config keys to their decoders. Keys not in
// this table are ignored during merge.
//
//nolint:gochecknoglobals // Fixed lookup table.
var sections = map[string]sectionDecoder{
	"output":   func(c *Config, n *yaml.Node) error { return replaceSection(&c.Output, n) },
	"logging":  func(c *Config, n *yaml.Node) error { return replaceSection(&c.Logging, n) },
	"catalog":  func(c *Config, n *yaml.Node) error { return replaceSection(&c.Catalog, n) },
	"feed":     func(c *Config, n *yaml.Node) error { return replaceSection(&c.Feed, n) },
	"dispatch": func(c *Config, n *yaml.Node) error { return replaceSection(&c.Dispatch, n) },
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. A section present in the overlay replaces the whole
// section in the target; absent sections are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		decode, ok := sections[key]
		if !ok {
			continue
		}
		if err = decode(target, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// replaceSection decodes node into a fresh T and stores it in field, so
// keys missing from the overlay section fall back to their zero values.
func replaceSection[T any](field *T, node *yaml.Node) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*field = v
	return nil
}
