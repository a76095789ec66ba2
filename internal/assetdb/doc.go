// Package assetdb indexes game asset files into a searchable SQLite
// database.
//
// The database records every discovered asset (models, textures, audio,
// materials) with its collection, size, SHA-256 checksum and key/value
// metadata. The Scanner walks an asset root and populates the database,
// reporting progress through a subscription that the caller explicitly
// tears down; the Searcher front end debounces keystroke-driven queries and
// guards against stale responses.
//
// Asset-service failures are recoverable: they surface as error values (or
// an Err field on async results), never panics, and the caller may simply
// retry the failing operation.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// SQLite supports one writer at a time, so the connection pool is capped at
// a single connection.
package assetdb
