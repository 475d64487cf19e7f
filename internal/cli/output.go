package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rshade/taskbatch/internal/config"
)

// tabPadding is the column gap of tabwriter tables.
const tabPadding = 2

// ErrUnknownOutputFormat is returned for an --output value other than table, json or yaml.
var ErrUnknownOutputFormat = errors.New("unknown output format")

// checkOutputFormat validates an --output value.
func checkOutputFormat(format string) error {
	switch format {
	case config.OutputTable, config.OutputJSON, config.OutputYAML:
		return nil
	}
	return fmt.Errorf("%w: %q (valid: table, json, yaml)", ErrUnknownOutputFormat, format)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOutputFormat, format)
}
