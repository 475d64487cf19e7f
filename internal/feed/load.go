package feed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/taskbatch/internal/logging"
)

// Format is the encoding of a snapshot file.
type Format string

// Snapshot file formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// sampleData is the snapshot used when no feed is configured.
//
//nolint:gochecknoglobals // Embedded file.
//go:embed data/sample.yaml
var sampleData []byte

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Decode reads one snapshot from r without validating it.
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	var s Snapshot
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decoding yaml snapshot: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding json snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &s, nil
}

// Encode writes s to w.
func Encode(w io.Writer, s *Snapshot, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Load reads and validates the snapshot at path. A directory is loaded
// with LoadDir.
func Load(ctx context.Context, path string) (*Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	if info.IsDir() {
		return LoadDir(ctx, path)
	}

	s, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	if err = s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "feed").
		Str("path", path).
		Int("batches", len(s.Batches)).
		Msg("snapshot loaded")
	return s, nil
}

// LoadDir reads every YAML and JSON file in dir concurrently, merges them
// in file name order and validates the result.
func LoadDir(ctx context.Context, dir string) (*Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, fmtErr := FormatFromPath(e.Name()); fmtErr == nil {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSnapshotFiles, dir)
	}
	slices.Sort(paths)

	parts := make([]*Snapshot, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := decodeFile(path)
			if err != nil {
				return err
			}
			parts[i] = s
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	merged, err := Merge(parts...)
	if err != nil {
		return nil, err
	}
	if err = merged.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "feed").
		Str("dir", dir).
		Int("files", len(paths)).
		Int("batches", len(merged.Batches)).
		Msg("snapshot directory loaded")
	return merged, nil
}

func decodeFile(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Sample returns the sample snapshot compiled into the binary.
func Sample() (*Snapshot, error) {
	s, err := Decode(bytes.NewReader(sampleData), FormatYAML)
	if err != nil {
		return nil, err
	}
	if err = s.Validate(); err != nil {
		return nil, fmt.Errorf("sample snapshot: %w", err)
	}
	return s, nil
}
