// Package source discovers, decodes, and writes restaurant plan files.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/plateplan/internal/model"
)

// ParseResult holds the output of decoding a single plan file.
type ParseResult struct {
	File    DiscoveredFile
	Plan    RawPlan
	Unknown []string // TOML keys that matched no plan field
	Err     error
}

// ParseFile reads and decodes one plan file. A plan without a name takes
// the file stem.
func ParseFile(df DiscoveredFile) ParseResult {
	data, err := os.ReadFile(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}

	raw, unknown, err := decode(data, df.Format)
	if err != nil {
		return ParseResult{File: df, Err: fmt.Errorf("decoding %s: %w", df.Path, err)}
	}
	if raw.Name == "" {
		raw.Name = df.Name
	}

	return ParseResult{File: df, Plan: raw, Unknown: unknown}
}

// Decode reads a plan in the given format from r.
func Decode(r io.Reader, format Format) (RawPlan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return RawPlan{}, err
	}
	raw, _, err := decode(data, format)
	return raw, err
}

func decode(data []byte, format Format) (RawPlan, []string, error) {
	var raw RawPlan

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return raw, nil, err
		}
		return raw, nil, nil
	case FormatTOML:
		md, err := toml.Decode(string(data), &raw)
		if err != nil {
			return raw, nil, err
		}
		var unknown []string
		for _, key := range md.Undecoded() {
			unknown = append(unknown, key.String())
		}
		return raw, unknown, nil
	default:
		return raw, nil, fmt.Errorf("unsupported plan format %q", format)
	}
}

// WritePlan encodes a typed plan to path, choosing the format from the
// file extension. Parent directories are created as needed.
func WritePlan(path string, p model.Plan) error {
	df, ok := Discover(path)
	if !ok {
		return fmt.Errorf("unsupported plan file extension: %s", filepath.Ext(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating plan dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating plan file: %w", err)
	}
	defer f.Close()

	if df.Format == FormatJSON {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	return toml.NewEncoder(f).Encode(p)
}
