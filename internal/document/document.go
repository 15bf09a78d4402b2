// Package document reads and writes editor state documents, the on-disk
// form of a unit.State used by the utk CLI.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eykd/unitree-go/internal/unit"
)

// Format names a document encoding.
type Format string

// Supported formats. FormatAuto picks YAML for .yaml/.yml paths and JSON
// otherwise.
const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrReadOnly is returned when the target document is not writable.
var ErrReadOnly = errors.New("document file is read-only")

// ParseFormat validates a format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown document format %q (want json, yaml or auto)", s)
	}
}

// Resolve returns the concrete format for path.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data as a state document. An empty document is an empty
// state. The result is normalised.
func Decode(data []byte, f Format) (unit.State, error) {
	var st unit.State
	if len(bytes.TrimSpace(data)) == 0 {
		return unit.Normalize(st), nil
	}
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &st); err != nil {
			return unit.State{}, fmt.Errorf("parse yaml document: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &st); err != nil {
			return unit.State{}, fmt.Errorf("parse json document: %w", err)
		}
	default:
		return unit.State{}, fmt.Errorf("decode document: unresolved format %q", f)
	}
	return unit.Normalize(st), nil
}

// Encode serialises st. JSON output is indented and newline terminated.
func Encode(st unit.State, f Format) ([]byte, error) {
	st = unit.Normalize(st)
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return nil, fmt.Errorf("encode yaml document: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml document: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json document: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("encode document: unresolved format %q", f)
	}
}

// WriteFileAtomic writes data to path via a temp file in the same
// directory and a rename. An existing file without owner write permission
// is refused.
func WriteFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		if fi.Mode().Perm()&0o200 == 0 {
			return ErrReadOnly
		}
		perm = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".utk-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
