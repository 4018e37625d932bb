package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// contextKey is the type for request-scoped context values.
type contextKey string

// MinifyLevel selects how aggressive the rewrite pipelines are.
// LevelSafe runs only rewrites that are redundancy removals; LevelAggressive
// additionally drops rules with empty bodies.
type MinifyLevel string

// FileKind classifies how a source file is processed and how its line is
// tagged in the report.
type FileKind string

// FileResult is what a transform worker reports back to the collector for a
// single file. Workers never touch shared counters; aggregation happens in
// one place from these values.
type FileResult struct {
	RelPath      string   // Path relative to the source root, mirrored in the output
	Kind         FileKind // How the file was processed
	OriginalSize int64    // Bytes before the transform
	NewSize      int64    // Bytes written to the output tree
	Skipped      bool     // True if the file could not be read or written
	Err          error    // The error that caused the skip, if any
}

// BuildStats holds the aggregate counters for one build run.
type BuildStats struct {
	HTMLCount     int
	CSSCount      int
	ImageCount    int
	CopyCount     int
	SkippedCount  int
	OriginalBytes int64
	OutputBytes   int64
	Elapsed       time.Duration
}

// App holds the configuration and shared state for a build run and the
// optional preview server.
type App struct {
	SourceDir     string
	OutputDir     string
	Level         MinifyLevel
	Workers       int
	ConvertImages bool
	GalleryDir    string
	SelfPath      string // The running binary, skipped during the walk
	Ignore        *ignoreMatcher

	Port           string
	IsProduction   bool
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	LimiterMap     map[string]*rate.Limiter
	LimiterMutex   sync.Mutex

	WatchDebounce time.Duration
	StartTime     time.Time
}
