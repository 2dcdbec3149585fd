// Command patgrep reconstructs a patent specification from a fragments file
// and searches it for a phrase.
//
// The fragments file is the JSON handoff from an external PDF text
// extractor: an array of {page, x, y, width, text} records.
//
// Usage:
//
//	patgrep -fragments us3243250.json -id "3,243,250" -query "aerial reconnaissance"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/tsawler/patgrep"
	"github.com/tsawler/patgrep/cache"
	"github.com/tsawler/patgrep/cache/memory"
	redisstore "github.com/tsawler/patgrep/cache/redis"
	"github.com/tsawler/patgrep/config"
	"github.com/tsawler/patgrep/fragment"
	"github.com/tsawler/patgrep/layout"
	"github.com/tsawler/patgrep/report"
	"github.com/tsawler/patgrep/search"
)

func main() {
	fragmentsPath := flag.String("fragments", "", "Path to the extracted-fragments JSON file")
	documentID := flag.String("id", "", "Document identifier, e.g. the patent number")
	query := flag.String("query", "", "Phrase to search for")
	configPath := flag.String("config", "config.yaml", "Path to the config YAML")
	format := flag.String("format", "text", "Output format: text, json or html")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *fragmentsPath == "" || *query == "" {
		fmt.Fprintln(os.Stderr, "Usage: patgrep -fragments file.json -id <document id> -query <phrase> [-config config.yaml] [-format text|json|html]")
		os.Exit(2)
	}

	// A .env file may supply REDIS_URL and friends; absence is fine
	_ = godotenv.Load()

	logger := newLogger(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	fragments, err := readFragments(*fragmentsPath)
	if err != nil {
		log.Fatalf("read fragments: %v", err)
	}

	loader, err := newLoader(cfg, logger, fragments)
	if err != nil {
		log.Fatalf("set up cache: %v", err)
	}

	ctx := context.Background()
	lines, err := loader.Load(ctx, *documentID)
	if err != nil {
		log.Fatalf("reconstruct %s: %v", *documentID, err)
	}

	index := search.BuildIndex(lines)
	matcher := search.NewMatcherWithConfig(cfg.MatcherConfig())
	matches, err := matcher.Search(index, *query)
	if err != nil {
		log.Fatalf("search: %v", err)
	}

	logger.Debug("search finished",
		"document", *documentID, "tokens", len(index), "matches", len(matches))

	if err := writeReport(os.Stdout, *format, *documentID, *query, matches); err != nil {
		log.Fatalf("write report: %v", err)
	}
}

// newLogger builds the process logger. Debug logging is opt-in.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// readFragments decodes the extractor's JSON handoff.
func readFragments(path string) ([]fragment.TextFragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fragments []fragment.TextFragment
	if err := json.Unmarshal(data, &fragments); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fragments, nil
}

// newLoader assembles the line cache in front of the reconstruction
// pipeline. REDIS_URL overrides the configured cache address.
func newLoader(cfg *config.AppConfig, logger *slog.Logger, fragments []fragment.TextFragment) (*cache.Loader, error) {
	anchorConfig, err := cfg.AnchorConfig()
	if err != nil {
		return nil, err
	}
	columnConfig, err := cfg.ColumnConfig()
	if err != nil {
		return nil, err
	}

	build := func(_ context.Context, documentID string) ([]layout.AnchoredLine, error) {
		return patgrep.FromFragments(fragments).
			DocumentID(documentID).
			WithAnchorConfig(anchorConfig).
			WithColumnConfig(columnConfig).
			WithMarginConfig(cfg.MarginConfig()).
			WithLogger(logger).
			Lines()
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	return cache.NewLoader(cache.LoaderConfig{
		Store:  store,
		Build:  build,
		Logger: logger,
	}), nil
}

// newStore picks the cache backend from configuration.
func newStore(cfg *config.AppConfig, logger *slog.Logger) (cache.Store, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = cfg.Cache.RedisURL
	}

	switch cfg.Cache.Type {
	case "", "memory":
		return memory.NewStore(), nil
	case "redis":
		if redisURL == "" {
			return nil, fmt.Errorf("redis cache selected but no redis_url configured")
		}
		opts, err := goredis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		logger.Debug("using redis line cache", "addr", opts.Addr)
		return redisstore.NewStore(goredis.NewClient(opts)), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Cache.Type)
	}
}

// writeReport serializes the matches in the requested format.
func writeReport(w *os.File, format, documentID, query string, matches []search.Match) error {
	switch format {
	case "", "text":
		return report.WriteText(w, matches)
	case "json":
		return report.WriteJSON(w, documentID, query, matches)
	case "html":
		return report.WriteHTML(w, documentID, query, matches)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
