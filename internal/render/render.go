// Package render serializes a filtered env line list for docker compose.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"envlist/internal/compose"
	"envlist/internal/constants"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a format name that has no renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// Options tune formats that need more than the lines.
type Options struct {
	// Service is the compose service name used by the compose format.
	Service string
	// WorkingDir is handed to the compose loader during validation.
	WorkingDir string
}

// IsFormat reports whether name is a known output format.
func IsFormat(name string) bool {
	return slices.Contains(constants.Formats, name)
}

// Render writes lines to w in the given format.
// The document is built in memory first so w receives either all of it or nothing.
func Render(ctx context.Context, w io.Writer, format string, lines []string, opts Options) error {
	var (
		out []byte
		err error
	)
	switch format {
	case constants.FormatJSON:
		out, err = JSON(lines)
	case constants.FormatYAML:
		out, err = YAML(lines)
	case constants.FormatCompose:
		out, err = Compose(ctx, lines, opts)
	default:
		return fmt.Errorf("%w %q (expected one of %v)", ErrUnknownFormat, format, constants.Formats)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// JSON encodes lines as a JSON array of strings followed by a newline.
// HTML characters are left alone so values like "URL=<a&b>" come out verbatim.
// U+2028 and U+2029 are still written as \u2028 and \u2029; the encoder always
// escapes them. The result decodes to the same strings.
func JSON(lines []string) ([]byte, error) {
	if lines == nil {
		lines = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(lines); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// YAML encodes lines as a YAML sequence of strings.
func YAML(lines []string) ([]byte, error) {
	if lines == nil {
		lines = []string{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lines); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Compose renders a compose fragment for opts.Service and validates it.
func Compose(ctx context.Context, lines []string, opts Options) ([]byte, error) {
	service := opts.Service
	if service == "" {
		service = constants.DefaultService
	}
	out, err := compose.Fragment(service, lines)
	if err != nil {
		return nil, err
	}
	if err := compose.Validate(ctx, opts.WorkingDir, out); err != nil {
		return nil, err
	}
	return out, nil
}
