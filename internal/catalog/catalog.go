// Package catalog keeps a relational mirror of a music collection in sync
// with disk state and answers faceted queries over it.
package catalog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // sqlite driver
)

const dbFileName = "library.db"

// Track is a row in the music catalog: one per indexed audio file.
type Track struct {
	// Path is the absolute file path and the catalog's primary key.
	Path string
	// Name is the file stem (base name without extension).
	Name         string
	Title        string
	Artist       string
	Album        string
	Genre        string
	Duration     time.Duration
	LastModified int64 // unix seconds, the file's mtime at last sync
	LastPosition int   // seconds; resume point for playback
}

// Criterion names one of the faceting dimensions tracks_by/distinct_values
// group the catalog by.
type Criterion int

const (
	CriterionArtist Criterion = iota
	CriterionAlbum
	CriterionGenre
	CriterionDirectory
	CriterionPlaylist
)

func (c Criterion) column() string {
	switch c {
	case CriterionArtist:
		return "artist"
	case CriterionAlbum:
		return "album"
	case CriterionGenre:
		return "genre"
	case CriterionDirectory, CriterionPlaylist:
		return ""
	default:
		return ""
	}
}

// Catalog manages the music library database.
type Catalog struct {
	db          *sql.DB
	scanWorkers int
}

// New wraps an already-open, already-migrated database connection.
func New(db *sql.DB) *Catalog {
	return &Catalog{db: db, scanWorkers: numWorkers}
}

// SetScanWorkers overrides the number of goroutines Sync uses to read tag
// metadata concurrently. n <= 0 is ignored.
func (c *Catalog) SetScanWorkers(n int) {
	if n > 0 {
		c.scanWorkers = n
	}
}

// Open opens (creating if necessary) the catalog database under the xdg
// data directory, configures it for concurrent access, and runs migrations.
func Open() (*Catalog, error) {
	dbPath, err := xdg.DataFile(filepath.Join("termusic-core", dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	if err := migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Catalog{db: sqlDB, scanWorkers: numWorkers}, nil
}

// Close releases the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}
