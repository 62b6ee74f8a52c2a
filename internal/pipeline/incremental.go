package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/theirongolddev/plateplan/internal/source"
	"github.com/theirongolddev/plateplan/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
	Pruned    int
}

// LoadWithCache discovers plan files, diffs them against the cache by mtime
// and size, parses only changed files, and prunes cache entries for files
// that no longer exist under dir.
func LoadWithCache(dir string, cache *store.Store, progressFn ProgressFunc) (*CachedLoadResult, error) {
	// Cache keys are absolute so entries survive a change of working directory.
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{TotalFiles: len(files)},
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	// Diff: partition into changed and unchanged
	var toReparse []source.DiscoveredFile
	var unchanged []source.DiscoveredFile
	stats := make(map[string]os.FileInfo, len(files))
	present := make(map[string]struct{}, len(files))

	for _, f := range files {
		present[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		stats[f.Path] = info

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			unchanged = append(unchanged, f)
		} else {
			toReparse = append(toReparse, f)
		}
	}

	if err := prune(cache, dir, tracked, present, result); err != nil {
		return nil, err
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		cached, err := cache.LoadPlanFiles()
		if err != nil {
			return nil, fmt.Errorf("loading cached plans: %w", err)
		}
		for _, f := range unchanged {
			p, ok := cached[f.Path]
			if !ok {
				// Tracker without a plan row; treat as changed.
				toReparse = append(toReparse, f)
				result.CacheHits--
				result.Reparsed++
				continue
			}
			result.ParsedFiles++
			result.Plans = append(result.Plans, LoadedPlan{File: f, Plan: p})
		}
	}

	if len(toReparse) > 0 {
		results := parseAll(toReparse, result.CacheHits, result.TotalFiles, progressFn)

		for i, pr := range results {
			before := len(result.Plans)
			result.add(pr)
			if len(result.Plans) == before {
				continue
			}
			if info, ok := stats[toReparse[i].Path]; ok {
				_ = cache.SavePlanFile(toReparse[i].Path, result.Plans[before].Plan, info.ModTime().UnixNano(), info.Size())
			}
		}
	}

	sort.Slice(result.Plans, func(i, j int) bool {
		return result.Plans[i].File.Path < result.Plans[j].File.Path
	})

	return result, nil
}

// prune drops cached entries under dir whose files have disappeared.
func prune(cache *store.Store, dir string, tracked map[string]store.FileInfo, present map[string]struct{}, result *CachedLoadResult) error {
	root := filepath.Clean(dir) + string(filepath.Separator)
	for path := range tracked {
		if _, ok := present[path]; ok {
			continue
		}
		if !strings.HasPrefix(path, root) {
			continue
		}
		if err := cache.DeletePlanFile(path); err != nil {
			return fmt.Errorf("pruning cache: %w", err)
		}
		result.Pruned++
	}
	return nil
}
