package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// runBuild executes a full build: clear and recreate the output root, walk
// the source tree, transform every file through the worker pool, then print
// the report. Configuration failures return an error before any file is
// touched; per-file failures are absorbed by the pool.
func (app *App) runBuild() (*BuildStats, error) {
	start := time.Now()

	if !dirExists(app.SourceDir) {
		return nil, fmt.Errorf("source directory %s does not exist", app.SourceDir)
	}
	if err := os.RemoveAll(app.OutputDir); err != nil {
		return nil, fmt.Errorf("clearing output directory %s: %w", app.OutputDir, err)
	}
	if err := os.MkdirAll(app.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", app.OutputDir, err)
	}

	jobs, err := app.collectJobs()
	if err != nil {
		return nil, fmt.Errorf("walking source tree: %w", err)
	}
	logInfo("Found %d file%s under %s", len(jobs), plural(len(jobs)), app.SourceDir)

	results := app.transformAll(jobs)

	if app.GalleryDir != "" {
		if err := app.generateGallery(); err != nil {
			logWarn("Gallery generation failed: %v", err)
		}
	}

	stats := tallyResults(results)
	stats.Elapsed = time.Since(start)
	app.printReport(results, stats)
	return stats, nil
}

// transformAll fans jobs out to a pool of workers. Each worker sends its
// FileResult over a channel and only this goroutine collects them, so the
// aggregate counters have a single owner and no updates can be lost.
func (app *App) transformAll(jobs []buildJob) []FileResult {
	workers := app.Workers
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan buildJob)
	resultCh := make(chan FileResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				resultCh <- app.processFile(job)
			}
		}()
	}
	go func() {
		for _, job := range jobs {
			jobCh <- job
		}
		close(jobCh)
	}()
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]FileResult, 0, len(jobs))
	for res := range resultCh {
		results = append(results, res)
	}

	// Deterministic report order regardless of worker scheduling.
	slices.SortFunc(results, func(a, b FileResult) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return results
}

// tallyResults folds per-file results into the aggregate counters. Skipped
// files are counted but contribute no bytes.
func tallyResults(results []FileResult) *BuildStats {
	stats := &BuildStats{}
	stats.SkippedCount = lo.CountBy(results, func(r FileResult) bool { return r.Skipped })
	processed := lo.Filter(results, func(r FileResult, _ int) bool { return !r.Skipped })
	for _, r := range processed {
		switch r.Kind {
		case KindHTML:
			stats.HTMLCount++
		case KindCSS:
			stats.CSSCount++
		case KindImage:
			stats.ImageCount++
		default:
			stats.CopyCount++
		}
		stats.OriginalBytes += r.OriginalSize
		stats.OutputBytes += r.NewSize
	}
	return stats
}
