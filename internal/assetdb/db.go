package assetdb

import (
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added UNIQUE constraint on assets.file_path (part of schema.sql for
//     new databases; added as an index for pre-v1 files)
const currentSchemaVersion = 1

// DefaultSearchLimit caps search results when the caller does not.
const DefaultSearchLimit = 1000

// Asset is one indexed asset file.
type Asset struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	FilePath   string    `json:"file_path"`
	AssetType  string    `json:"asset_type"`
	Collection string    `json:"collection"`
	FileSize   int64     `json:"file_size"`
	Checksum   string    `json:"checksum"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Metadata is one key/value pair attached to an asset.
type Metadata struct {
	AssetID int64  `json:"asset_id"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// Collection groups assets by their top-level source directory.
type Collection struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LicenseInfo string `json:"license_info"`
	AssetCount  int64  `json:"asset_count"`
}

// SearchResult pairs an asset with its metadata.
type SearchResult struct {
	Asset        Asset      `json:"asset"`
	Metadata     []Metadata `json:"metadata"`
	HasThumbnail bool       `json:"has_thumbnail"`
}

// SearchParams filters a search. Empty fields do not constrain.
type SearchParams struct {
	Query      string `json:"query"`
	AssetType  string `json:"asset_type,omitempty"`
	Collection string `json:"collection,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// Stats summarizes database contents.
type Stats struct {
	TotalAssets      int            `json:"total_assets"`
	TotalCollections int            `json:"total_collections"`
	AssetsByType     map[string]int `json:"assets_by_type"`
	TotalSizeBytes   int64          `json:"total_size_bytes"`
	Collections      map[string]int `json:"collections"`
}

// DB provides storage for the asset index.
type DB struct {
	db *sql.DB
}

// Open creates or opens the asset database at the given path, creating the
// parent directory if needed. Applies required pragmas and migrations
// automatically; idempotent, safe to call on an existing file.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a capped pool avoids
	// SQLITE_BUSY under concurrent scan + search.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	slog.Info("asset database opened", "path", path)
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return runMigrations(db)
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		// CREATE UNIQUE INDEX IF NOT EXISTS is safe - no-op if present.
		if _, err := db.Exec(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_assets_path_unique
			ON assets(file_path)
		`); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// AssetTypeFor classifies a file path by extension.
func AssetTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fbx":
		return "Model"
	case ".png", ".jpg", ".jpeg":
		return "Texture"
	case ".wav", ".mp3", ".ogg":
		return "Audio"
	case ".mat":
		return "Material"
	default:
		return "Unknown"
	}
}

// InsertAsset indexes the file at path under the given collection,
// computing its SHA-256 checksum and extracting format metadata. Returns
// the new asset row id.
func (d *DB) InsertAsset(path, collection string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat asset: %w", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read asset: %w", err)
	}
	checksum := fmt.Sprintf("%x", sha256.Sum256(contents))
	assetType := AssetTypeFor(path)

	if _, err := d.db.Exec(
		"INSERT OR IGNORE INTO collections (name) VALUES (?)", collection,
	); err != nil {
		return 0, fmt.Errorf("ensure collection: %w", err)
	}

	res, err := d.db.Exec(
		`INSERT INTO assets (name, file_path, asset_type, collection, file_size, checksum)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		filepath.Base(path), path, assetType, collection, info.Size(), checksum,
	)
	if err != nil {
		return 0, fmt.Errorf("insert asset: %w", err)
	}
	assetID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("asset row id: %w", err)
	}

	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext != "" && assetType != "Unknown" {
		if _, err := d.db.Exec(
			"INSERT OR REPLACE INTO asset_metadata (asset_id, key, value) VALUES (?, ?, ?)",
			assetID, "format", ext,
		); err != nil {
			return 0, fmt.Errorf("insert metadata: %w", err)
		}
	}

	if _, err := d.db.Exec(
		`UPDATE collections SET
		 asset_count = (SELECT COUNT(*) FROM assets WHERE collection = ?1),
		 updated_at = CURRENT_TIMESTAMP
		 WHERE name = ?1`, collection,
	); err != nil {
		return 0, fmt.Errorf("update collection count: %w", err)
	}

	return assetID, nil
}

// HasAsset reports whether a file path is already indexed.
func (d *DB) HasAsset(path string) (bool, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM assets WHERE file_path = ?", path).Scan(&n); err != nil {
		return false, fmt.Errorf("check asset: %w", err)
	}
	return n > 0, nil
}

// SearchAssets returns assets matching the params, ordered by name.
func (d *DB) SearchAssets(params SearchParams) ([]SearchResult, error) {
	query := `SELECT a.id, a.name, a.file_path, a.asset_type, a.collection,
	                 a.file_size, a.checksum, a.created_at, a.updated_at,
	                 CASE WHEN t.asset_id IS NOT NULL THEN 1 ELSE 0 END AS has_thumbnail
	          FROM assets a
	          LEFT JOIN thumbnails t ON a.id = t.asset_id
	          WHERE 1=1`
	var args []any

	if params.Query != "" {
		query += " AND a.name LIKE ?"
		args = append(args, "%"+params.Query+"%")
	}
	if params.AssetType != "" {
		query += " AND a.asset_type = ?"
		args = append(args, params.AssetType)
	}
	if params.Collection != "" {
		query += " AND a.collection = ?"
		args = append(args, params.Collection)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query += " ORDER BY a.name ASC LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var hasThumb int
		if err := rows.Scan(
			&r.Asset.ID, &r.Asset.Name, &r.Asset.FilePath, &r.Asset.AssetType,
			&r.Asset.Collection, &r.Asset.FileSize, &r.Asset.Checksum,
			&r.Asset.CreatedAt, &r.Asset.UpdatedAt, &hasThumb,
		); err != nil {
			return nil, fmt.Errorf("scan asset row: %w", err)
		}
		r.HasThumbnail = hasThumb == 1
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset rows: %w", err)
	}

	for i := range results {
		md, err := d.assetMetadata(results[i].Asset.ID)
		if err != nil {
			return nil, err
		}
		results[i].Metadata = md
	}
	return results, nil
}

func (d *DB) assetMetadata(assetID int64) ([]Metadata, error) {
	rows, err := d.db.Query(
		"SELECT asset_id, key, value FROM asset_metadata WHERE asset_id = ?", assetID)
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()

	var md []Metadata
	for rows.Next() {
		var m Metadata
		if err := rows.Scan(&m.AssetID, &m.Key, &m.Value); err != nil {
			return nil, fmt.Errorf("scan metadata row: %w", err)
		}
		md = append(md, m)
	}
	return md, rows.Err()
}

// Collections returns all collections ordered by name.
func (d *DB) Collections() ([]Collection, error) {
	rows, err := d.db.Query(
		`SELECT id, name, COALESCE(description, ''), COALESCE(license_info, ''), asset_count
		 FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	var out []Collection
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.LicenseInfo, &c.AssetCount); err != nil {
			return nil, fmt.Errorf("scan collection row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats summarizes the database.
func (d *DB) Stats() (Stats, error) {
	stats := Stats{
		AssetsByType: make(map[string]int),
		Collections:  make(map[string]int),
	}

	collections, err := d.Collections()
	if err != nil {
		return Stats{}, err
	}
	stats.TotalCollections = len(collections)
	for _, c := range collections {
		stats.Collections[c.Name] = int(c.AssetCount)
	}

	rows, err := d.db.Query(
		"SELECT asset_type, COUNT(*), COALESCE(SUM(file_size), 0) FROM assets GROUP BY asset_type")
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var assetType string
		var count int
		var size int64
		if err := rows.Scan(&assetType, &count, &size); err != nil {
			return Stats{}, fmt.Errorf("scan stats row: %w", err)
		}
		stats.AssetsByType[assetType] = count
		stats.TotalAssets += count
		stats.TotalSizeBytes += size
	}
	return stats, rows.Err()
}
