// Package export writes level descriptors out to game-engine consumable
// files.
//
// Export is best-effort and batch: every requested format is attempted, a
// failure in one never aborts the others, and the call "completes" whenever
// the output directory is reachable. Callers must inspect
// Result.ExportedFiles[].Success and Result.Errors independently - overall
// completion does not imply every format succeeded.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/morganbevy/editor/internal/level"
)

// ExporterVersion is stamped into JSON export metadata.
const ExporterVersion = "0.1.0"

// ExportedFile describes one attempted output file.
type ExportedFile struct {
	Format   Format `json:"format"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
	Success  bool   `json:"success"`
}

// Result aggregates a multi-format export.
type Result struct {
	ExportedFiles []ExportedFile `json:"exported_files"`
	TotalObjects  int            `json:"total_objects"`
	ExportTimeMs  int64          `json:"export_time_ms"`
	Errors        []string       `json:"errors"`
	Warnings      []string       `json:"warnings"`
}

// Exporter renders levels into export formats.
type Exporter struct {
	now func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the wall clock used for timestamps in file names and
// export metadata. Tests pin it for golden comparisons.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportMultiFormat writes the level in every requested format into dir.
// The returned error is non-nil only when the output directory itself is
// unusable; per-format failures are reported inside the Result.
func (e *Exporter) ExportMultiFormat(lvl level.Level, formats []Format, dir string) (Result, error) {
	start := time.Now()
	result := Result{
		ExportedFiles: []ExportedFile{},
		TotalObjects:  len(lvl.Objects),
		Errors:        []string{},
		Warnings:      []string{},
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}

	for _, format := range formats {
		var data []byte
		var err error
		switch format {
		case FormatJSON:
			data, err = e.renderJSON(lvl)
		case FormatRON:
			data = renderRON(lvl)
		case FormatRustCode:
			data = renderRustCode(lvl)
		case FormatGLTF, FormatFBX:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s export not yet implemented", strings.ToUpper(string(format))))
			continue
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("unsupported export format: %s", format))
			continue
		}

		filePath := e.exportFilePath(dir, format, lvl.Name)
		if err == nil {
			err = os.WriteFile(filePath, data, 0o644)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to export %s: %v", format, err))
			result.ExportedFiles = append(result.ExportedFiles, ExportedFile{
				Format:   format,
				FilePath: filePath,
				Success:  false,
			})
			continue
		}

		result.ExportedFiles = append(result.ExportedFiles, ExportedFile{
			Format:   format,
			FilePath: filePath,
			FileSize: int64(len(data)),
			Success:  true,
		})
		slog.Info("exported level", "format", format, "path", filePath, "bytes", len(data))
	}

	result.ExportTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

// exportFilePath builds "<dir>/<safe-level-name>_<timestamp>.<ext>".
func (e *Exporter) exportFilePath(dir string, format Format, levelName string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, levelName)
	timestamp := e.now().UTC().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", safe, timestamp, format.Extension()))
}

type exportInfo struct {
	ExportedAt      time.Time `json:"exported_at"`
	ExporterVersion string    `json:"exporter_version"`
	FormatVersion   string    `json:"format_version"`
	ExportedBy      string    `json:"exported_by"`
}

type jsonExport struct {
	Level level.Level `json:"level"`
	Info  exportInfo  `json:"export_info"`
}

func (e *Exporter) renderJSON(lvl level.Level) ([]byte, error) {
	doc := jsonExport{
		Level: lvl,
		Info: exportInfo{
			ExportedAt:      e.now().UTC(),
			ExporterVersion: ExporterVersion,
			FormatVersion:   "1.0",
			ExportedBy:      "Morgan-Bevy Level Editor",
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}
