package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/plateplan/internal/model"
	"github.com/theirongolddev/plateplan/internal/source"
)

// LoadedPlan is one normalized plan file.
type LoadedPlan struct {
	File    source.DiscoveredFile
	Plan    model.Plan
	Unknown []string
}

// LoadResult holds the output of loading a plans directory.
type LoadResult struct {
	Plans       []LoadedPlan
	TotalFiles  int
	ParsedFiles int
	FileErrors  int
	Errors      []error
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses every plan file in dir.
// It uses a bounded worker pool for parallel parsing.
func Load(dir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	results := parseAll(files, 0, len(files), progressFn)
	for _, pr := range results {
		result.add(pr)
	}

	return result, nil
}

func (r *LoadResult) add(pr source.ParseResult) {
	if pr.Err != nil {
		r.FileErrors++
		r.Errors = append(r.Errors, pr.Err)
		return
	}
	r.ParsedFiles++
	r.Plans = append(r.Plans, LoadedPlan{
		File:    pr.File,
		Plan:    NormalizePlan(pr.Plan),
		Unknown: pr.Unknown,
	})
}

// parseAll parses files with a bounded worker pool. Results keep the input
// order. offset is added to the progress count so cached files can be
// reported as already done.
func parseAll(files []source.DiscoveredFile, offset, total int, progressFn ProgressFunc) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n)+offset, total)
				}
			}
		}()
	}

	wg.Wait()
	return results
}
