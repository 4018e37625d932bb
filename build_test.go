package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTestFile creates a file with parent directories under a test tree.
func writeTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// newTestApp builds an App for a source/output pair with defaults.
func newTestApp(t *testing.T, src, out string) *App {
	t.Helper()
	outAbs, err := filepath.Abs(out)
	if err != nil {
		t.Fatalf("abs %s: %v", out, err)
	}
	app := &App{
		SourceDir: src,
		OutputDir: out,
		Level:     LevelSafe,
		Workers:   4,
		StartTime: time.Now(),
	}
	app.Ignore = newIgnoreMatcher(src, outAbs, nil)
	return app
}

// TestRunBuildMirrorsTree checks the round-trip property: every non-ignored
// source file appears exactly once in the output at the same relative path,
// and nothing else does.
func TestRunBuildMirrorsTree(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")

	pngBytes := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	writeTestFile(t, filepath.Join(src, "index.html"), []byte("<!DOCTYPE html>\n<html>\n  <body>\n    <p>Hi</p>\n  </body>\n</html>"))
	writeTestFile(t, filepath.Join(src, "css", "style.css"), []byte("body {\n  color: #ffffff;\n  margin: 0px;\n}\n"))
	writeTestFile(t, filepath.Join(src, "img", "logo.png"), pngBytes)
	writeTestFile(t, filepath.Join(src, "notes.txt"), []byte("keep me"))
	writeTestFile(t, filepath.Join(src, ".git", "config"), []byte("[core]"))
	writeTestFile(t, filepath.Join(src, "node_modules", "x.js"), []byte("var x;"))

	app := newTestApp(t, src, out)
	stats, err := app.runBuild()
	if err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	if stats.HTMLCount != 1 || stats.CSSCount != 1 || stats.CopyCount != 2 {
		t.Errorf("counts HTML/CSS/COPY = %d/%d/%d, want 1/1/2",
			stats.HTMLCount, stats.CSSCount, stats.CopyCount)
	}
	if stats.SkippedCount != 0 {
		t.Errorf("SkippedCount = %d, want 0", stats.SkippedCount)
	}

	html, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("output index.html missing: %v", err)
	}
	if string(html) != "<!doctype html><html><body><p>Hi</p></body></html>" {
		t.Errorf("minified html = %q", html)
	}

	css, err := os.ReadFile(filepath.Join(out, "css", "style.css"))
	if err != nil {
		t.Fatalf("output style.css missing: %v", err)
	}
	if string(css) != "body{color:#fff;margin:0}" {
		t.Errorf("minified css = %q", css)
	}

	png, err := os.ReadFile(filepath.Join(out, "img", "logo.png"))
	if err != nil {
		t.Fatalf("output logo.png missing: %v", err)
	}
	if !bytes.Equal(png, pngBytes) {
		t.Error("copied png is not byte-for-byte identical")
	}

	if _, err := os.Stat(filepath.Join(out, ".git")); !os.IsNotExist(err) {
		t.Error(".git was not excluded from the output tree")
	}
	if _, err := os.Stat(filepath.Join(out, "node_modules")); !os.IsNotExist(err) {
		t.Error("node_modules was not excluded from the output tree")
	}
}

// TestRunBuildClearsStaleOutput checks the output root is rebuilt from scratch
func TestRunBuildClearsStaleOutput(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeTestFile(t, filepath.Join(src, "a.html"), []byte("<p>a</p>"))
	writeTestFile(t, filepath.Join(out, "stale.html"), []byte("old"))

	app := newTestApp(t, src, out)
	if _, err := app.runBuild(); err != nil {
		t.Fatalf("runBuild: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "stale.html")); !os.IsNotExist(err) {
		t.Error("stale output file survived the rebuild")
	}
}

// TestRunBuildMissingSource checks the fatal configuration path
func TestRunBuildMissingSource(t *testing.T) {
	app := newTestApp(t, filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "dist"))
	if _, err := app.runBuild(); err == nil {
		t.Error("expected error for missing source directory")
	}
}

// TestRunBuildSequential checks the pool degrades to the one-worker case
func TestRunBuildSequential(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeTestFile(t, filepath.Join(src, "a.css"), []byte("a { b : c ; }"))
	writeTestFile(t, filepath.Join(src, "b.css"), []byte("d { e : f ; }"))

	app := newTestApp(t, src, out)
	app.Workers = 1
	stats, err := app.runBuild()
	if err != nil {
		t.Fatalf("runBuild: %v", err)
	}
	if stats.CSSCount != 2 {
		t.Errorf("CSSCount = %d, want 2", stats.CSSCount)
	}
}

// TestClassify checks extension routing, including the case-sensitive match
func TestClassify(t *testing.T) {
	app := &App{}
	tests := []struct {
		path string
		want FileKind
	}{
		{"a/index.html", KindHTML},
		{"a/index.htm", KindHTML},
		{"a/style.css", KindCSS},
		{"a/PAGE.HTML", KindCopy},
		{"a/logo.png", KindCopy},
		{"a/data.json", KindCopy},
	}
	for _, tt := range tests {
		if got := app.classify(tt.path); got != tt.want {
			t.Errorf("classify(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	app.ConvertImages = true
	if got := app.classify("a/logo.png"); got != KindImage {
		t.Errorf("classify with -images = %q, want %q", got, KindImage)
	}
}
