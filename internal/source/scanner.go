package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks a plans directory and discovers all TOML and JSON plan files.
// A missing directory yields no files and no error.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			// Skip hidden directories such as .git
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		df, ok := Discover(path)
		if !ok {
			return nil
		}
		files = append(files, df)
		return nil
	})

	return files, err
}

// Discover describes a single plan file path. It reports false when the
// extension is not a supported plan format.
func Discover(path string) (DiscoveredFile, bool) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = FormatTOML
	case ".json":
		format = FormatJSON
	default:
		return DiscoveredFile{}, false
	}

	base := filepath.Base(path)
	return DiscoveredFile{
		Path:   path,
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Format: format,
	}, true
}
