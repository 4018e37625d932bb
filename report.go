package main

import (
	"fmt"
)

// formatSize renders a byte count in binary units: plain bytes below 1024,
// KB with two decimals below 1 MiB, MB with two decimals above.
func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%dB", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2fKB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2fMB", float64(n)/(1024*1024))
	}
}

// percentSaved computes 100 - new*100/original, floored at zero. A transform
// that grows a file reports 0%, never a negative number. An original size of
// zero also reports 0%.
func percentSaved(original, newSize int64) int64 {
	if original <= 0 {
		return 0
	}
	saved := 100 - newSize*100/original
	if saved < 0 {
		return 0
	}
	return saved
}

// printReport writes the per-file lines and the final summary block.
// Results arrive pre-sorted by relative path, so parallel transform order
// never changes the output.
func (app *App) printReport(results []FileResult, stats *BuildStats) {
	for _, res := range results {
		if res.Skipped {
			continue
		}
		if res.Kind == KindCopy {
			fmt.Printf("[%s] %s %s\n", res.Kind, res.RelPath, formatSize(res.NewSize))
			continue
		}
		fmt.Printf("[%s] %s %s -> %s (%d%% saved)\n",
			res.Kind, res.RelPath,
			formatSize(res.OriginalSize), formatSize(res.NewSize),
			percentSaved(res.OriginalSize, res.NewSize))
	}

	elapsed := int(stats.Elapsed.Seconds())
	savedBytes := stats.OriginalBytes - stats.OutputBytes
	if savedBytes < 0 {
		savedBytes = 0
	}
	fmt.Printf("\nBuild complete in %d second%s\n", elapsed, plural(elapsed))
	fmt.Printf("  HTML:     %d file%s\n", stats.HTMLCount, plural(stats.HTMLCount))
	fmt.Printf("  CSS:      %d file%s\n", stats.CSSCount, plural(stats.CSSCount))
	if stats.ImageCount > 0 {
		fmt.Printf("  IMG:      %d file%s\n", stats.ImageCount, plural(stats.ImageCount))
	}
	fmt.Printf("  COPY:     %d file%s\n", stats.CopyCount, plural(stats.CopyCount))
	if stats.SkippedCount > 0 {
		fmt.Printf("  Skipped:  %d file%s\n", stats.SkippedCount, plural(stats.SkippedCount))
	}
	fmt.Printf("  Original: %s\n", formatSize(stats.OriginalBytes))
	fmt.Printf("  Output:   %s\n", formatSize(stats.OutputBytes))
	fmt.Printf("  Saved:    %s (%d%%)\n",
		formatSize(savedBytes), percentSaved(stats.OriginalBytes, stats.OutputBytes))
}
