package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

func main() {
	_ = godotenv.Load()

	var (
		srcDir  = flag.String("src", getEnvStr("SOURCE_DIR", "."), "Source directory to build from")
		outDir  = flag.String("out", getEnvStr("OUTPUT_DIR", DefaultOutputDir), "Output directory, deleted and recreated each run")
		level   = flag.String("level", getEnvStr("MINIFY_LEVEL", string(LevelSafe)), "Minify level: safe or aggressive")
		workers = flag.Int("workers", getEnvInt("WORKERS", runtime.NumCPU()), "Parallel transform workers, 1 for sequential")
		images  = flag.Bool("images", false, "Recompress JPEG/PNG images instead of copying")
		gallery = flag.String("gallery", "", "Directory of images with caption sidecars to render as gallery.html")
		exclude = flag.String("exclude", "", "Comma-separated glob patterns to exclude (doublestar syntax)")
		watch   = flag.Bool("watch", false, "Rebuild whenever the source tree changes")
		serve   = flag.Bool("serve", false, "Serve the output directory after building")
		port    = flag.String("port", getEnvStr("PORT", "8080"), "Preview server port")
	)
	flag.Parse()

	minifyLevel := MinifyLevel(*level)
	if minifyLevel != LevelSafe && minifyLevel != LevelAggressive {
		logWarn("Unknown minify level %q, using %q", *level, LevelSafe)
		minifyLevel = LevelSafe
	}

	var excludes []string
	if *exclude != "" {
		excludes = lo.Map(strings.Split(*exclude, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
	}

	selfPath, err := os.Executable()
	if err != nil {
		logWarn("Cannot determine own binary path: %v", err)
		selfPath = ""
	}

	outAbs, err := filepath.Abs(*outDir)
	if err != nil {
		logFatal("Cannot resolve output directory %s: %v", *outDir, err)
	}

	app := &App{
		SourceDir:      *srcDir,
		OutputDir:      *outDir,
		Level:          minifyLevel,
		Workers:        *workers,
		ConvertImages:  *images,
		GalleryDir:     *gallery,
		SelfPath:       selfPath,
		Port:           *port,
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		LimiterMap:     make(map[string]*rate.Limiter),
		WatchDebounce:  getEnvDuration("WATCH_DEBOUNCE", 300*time.Millisecond),
		StartTime:      time.Now(),
	}
	app.Ignore = newIgnoreMatcher(app.SourceDir, outAbs, excludes)

	logInfo("Building %s -> %s (level=%s, workers=%d)", app.SourceDir, app.OutputDir, app.Level, app.Workers)
	if _, err := app.runBuild(); err != nil {
		logFatal("Build failed: %v", err)
	}

	if !*watch && !*serve {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *watch && !*serve {
		if err := app.watchAndRebuild(ctx); err != nil {
			logFatal("Watch failed: %v", err)
		}
		return
	}
	if *watch {
		go func() {
			if err := app.watchAndRebuild(ctx); err != nil {
				logWarn("Watch stopped: %v", err)
			}
		}()
	}
	if err := app.runServer(ctx); err != nil {
		logFatal("Server failed: %v", err)
	}
}
