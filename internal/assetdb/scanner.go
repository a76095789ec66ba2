package assetdb

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ScanProgress is delivered to subscribers once per processed file.
type ScanProgress struct {
	CurrentFile       string   `json:"current_file"`
	Processed         int      `json:"processed"`
	Total             int      `json:"total"`
	CurrentCollection string   `json:"current_collection"`
	Errors            []string `json:"errors"`
}

// ScanResult summarizes a completed scan.
type ScanResult struct {
	TotalAssets      int            `json:"total_assets"`
	CollectionsFound []string       `json:"collections_found"`
	AssetsByType     map[string]int `json:"assets_by_type"`
	ScanDurationMs   int64          `json:"scan_duration_ms"`
	Errors           []string       `json:"errors"`
}

// Scanner walks asset directories and populates the database.
//
// Progress subscriptions are safe to add and remove from any goroutine;
// scans themselves run one at a time on whichever goroutine calls
// ScanDirectory.
type Scanner struct {
	db *DB

	mu      sync.Mutex
	subs    map[int]func(ScanProgress)
	nextSub int
}

// NewScanner creates a scanner over an open database.
func NewScanner(db *DB) *Scanner {
	return &Scanner{db: db, subs: make(map[int]func(ScanProgress))}
}

// OnScanProgress registers a progress callback and returns its unsubscribe
// function. The caller owns the subscription lifetime and must tear it down
// when done, or the callback leaks for the life of the scanner.
func (s *Scanner) OnScanProgress(fn func(ScanProgress)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Scanner) publish(p ScanProgress) {
	s.mu.Lock()
	subs := make([]func(ScanProgress), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(p)
	}
}

// ScanDirectory walks the asset root, groups files by their top-level
// directory (the collection), and indexes everything not already present.
// Individual file failures are reported in the result's Errors, never
// aborting the scan.
func (s *Scanner) ScanDirectory(root string) (ScanResult, error) {
	start := time.Now()

	if _, err := os.Stat(root); err != nil {
		return ScanResult{}, fmt.Errorf("assets directory does not exist: %s", root)
	}
	slog.Info("starting asset scan", "root", root)

	discovered, err := discoverAssets(root)
	if err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{
		TotalAssets:  len(discovered),
		AssetsByType: make(map[string]int),
		Errors:       []string{},
	}

	byCollection := make(map[string][]string)
	for _, path := range discovered {
		coll := collectionFor(path, root)
		byCollection[coll] = append(byCollection[coll], path)
	}
	collections := make([]string, 0, len(byCollection))
	for name := range byCollection {
		collections = append(collections, name)
	}
	sort.Strings(collections)
	result.CollectionsFound = collections

	processed := 0
	for _, coll := range collections {
		for _, path := range byCollection[coll] {
			s.publish(ScanProgress{
				CurrentFile:       filepath.Base(path),
				Processed:         processed,
				Total:             len(discovered),
				CurrentCollection: coll,
				Errors:            result.Errors,
			})

			if err := s.indexFile(path, coll); err != nil {
				msg := fmt.Sprintf("failed to process %s: %v", path, err)
				slog.Warn("asset scan error", "path", path, "err", err)
				result.Errors = append(result.Errors, msg)
			} else {
				result.AssetsByType[AssetTypeFor(path)]++
			}
			processed++
		}
	}

	result.ScanDurationMs = time.Since(start).Milliseconds()
	slog.Info("asset scan complete",
		"assets", processed, "errors", len(result.Errors), "ms", result.ScanDurationMs)
	return result, nil
}

// indexFile inserts a single file unless its path is already indexed.
func (s *Scanner) indexFile(path, collection string) error {
	exists, err := s.db.HasAsset(path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = s.db.InsertAsset(path, collection)
	return err
}

// Watch indexes asset files as they appear under root, until the context is
// cancelled. New files are attributed to the collection their top-level
// directory names, like a full scan would.
func (s *Scanner) Watch(ctx context.Context, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the whole existing tree; fsnotify is not recursive on its own.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !skipDir(d.Name()) {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch asset tree: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				if !skipDir(filepath.Base(ev.Name)) {
					_ = watcher.Add(ev.Name)
				}
				continue
			}
			if !isAssetFile(ev.Name) {
				continue
			}
			if err := s.indexFile(ev.Name, collectionFor(ev.Name, root)); err != nil {
				slog.Warn("watch index error", "path", ev.Name, "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("asset watcher error", "err", err)
		}
	}
}

// discoverAssets collects all indexable files under root, depth-first.
func discoverAssets(root string) ([]string, error) {
	var assets []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isAssetFile(path) {
			assets = append(assets, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk asset tree: %w", err)
	}
	return assets, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules" || name == "target"
}

// isAssetFile reports whether we should track the file at all. Hidden
// files, engine sidecar files and OS litter are skipped.
func isAssetFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, ".meta") ||
		strings.HasSuffix(name, ".import") ||
		name == "Thumbs.db" {
		return false
	}
	return AssetTypeFor(path) != "Unknown"
}

// collectionFor names the collection by the first path component under root.
func collectionFor(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "Unknown"
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return "Unknown"
	}
	return parts[0]
}
