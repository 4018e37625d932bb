package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// buildJob is one source file queued for transformation.
type buildJob struct {
	absPath string
	relPath string
	kind    FileKind
	size    int64
}

// collectJobs enumerates every regular file under the source root,
// excluding ignored directories, the output root, and the build tool's own
// binary. Unreadable entries are logged and skipped; the walk keeps going.
func (app *App) collectJobs() ([]buildJob, error) {
	var jobs []buildJob
	err := filepath.WalkDir(app.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logWarn("Skipping unreadable entry %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != app.SourceDir && app.Ignore.shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if app.SelfPath != "" {
			if abs, err := filepath.Abs(path); err == nil && abs == app.SelfPath {
				return nil
			}
		}
		if app.Ignore.shouldIgnore(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logWarn("Skipping unstattable file %s: %v", path, err)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(app.SourceDir, path)
		if err != nil {
			logWarn("Skipping file outside source root %s: %v", path, err)
			return nil
		}
		jobs = append(jobs, buildJob{
			absPath: path,
			relPath: filepath.ToSlash(rel),
			kind:    app.classify(path),
			size:    info.Size(),
		})
		return nil
	})
	return jobs, err
}

// classify routes a file by extension. The match is case-sensitive on the
// lowercase extensions; PAGE.HTML is copied, not minified.
func (app *App) classify(path string) FileKind {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch ext {
	case "html", "htm":
		return KindHTML
	case "css":
		return KindCSS
	}
	if app.ConvertImages {
		switch ext {
		case "jpg", "jpeg", "png":
			return KindImage
		}
	}
	return KindCopy
}

// processFile reads, transforms, and writes one file, returning the result
// for the collector. Per-file failures mark the result skipped and never
// abort the batch; one malformed asset must not block a whole site build.
func (app *App) processFile(job buildJob) FileResult {
	res := FileResult{RelPath: job.relPath, Kind: job.kind, OriginalSize: job.size}

	src, err := os.ReadFile(job.absPath)
	if err != nil {
		logWarn("Skipping unreadable file %s: %v", job.relPath, err)
		res.Skipped = true
		res.Err = err
		return res
	}
	res.OriginalSize = int64(len(src))

	var out []byte
	switch job.kind {
	case KindHTML:
		out = []byte(MinifyHTML(string(src)))
	case KindCSS:
		out = []byte(MinifyCSS(string(src), app.Level))
	case KindImage:
		ext := strings.TrimPrefix(filepath.Ext(job.absPath), ".")
		out, err = recompressImage(src, ext)
		if err != nil {
			logWarn("Recompress failed for %s, copying verbatim: %v", job.relPath, err)
			out = src
			res.Kind = KindCopy
		}
	default:
		out = src
	}

	dst := filepath.Join(app.OutputDir, filepath.FromSlash(job.relPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		logWarn("Skipping %s, cannot create parent directory: %v", job.relPath, err)
		res.Skipped = true
		res.Err = err
		return res
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		logWarn("Skipping %s, write failed: %v", job.relPath, err)
		res.Skipped = true
		res.Err = err
		return res
	}

	res.NewSize = int64(len(out))
	return res
}
