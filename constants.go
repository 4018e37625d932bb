package main

// Build configuration defaults
const (
	DefaultOutputDir = "dist" // Deleted and recreated on every run
	IgnoreFileName   = ".siteignore"
	JPEGQuality      = 85 // Re-encode quality for -images
)

// File kind tags used in per-file report lines
const (
	KindHTML  FileKind = "HTML"
	KindCSS   FileKind = "CSS"
	KindImage FileKind = "IMG"
	KindCopy  FileKind = "COPY"
)

// Minify levels
const (
	LevelSafe       MinifyLevel = "safe"
	LevelAggressive MinifyLevel = "aggressive"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

// defaultIgnoreDirs are directory names never traversed regardless of
// ignore-file rules: version control metadata, dependency caches, and
// virtual environments. The output root is excluded separately because
// its name is configurable.
var defaultIgnoreDirs = []string{
	".git", ".svn", ".hg",
	"node_modules", "__pycache__",
	".venv", "venv",
	".idea", ".vscode", ".cache",
}
