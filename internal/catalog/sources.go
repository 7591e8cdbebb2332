package catalog

import (
	"strings"
	"time"

	"github.com/llehouerou/termusic-core/internal/errmsg"
)

// Sources returns all configured library root paths, in the order they
// were added.
func (c *Catalog) Sources() ([]string, error) {
	rows, err := c.db.Query(`SELECT path FROM sources ORDER BY added_at`)
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		sources = append(sources, path)
	}
	return sources, rows.Err()
}

// AddSource registers path as a library root to be indexed by Sync.
func (c *Catalog) AddSource(path string) error {
	_, err := c.db.Exec(`INSERT OR IGNORE INTO sources (path, added_at) VALUES (?, ?)`, path, time.Now().Unix())
	if err != nil {
		return errmsg.New(errmsg.OpSourceAdd, errmsg.KindCatalog, err)
	}
	return nil
}

// RemoveSource unregisters path and deletes every catalog track nested
// under it, including its FTS index rows, in a single transaction.
func (c *Catalog) RemoveSource(path string) error {
	prefix := path
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	tx, err := c.db.Begin()
	if err != nil {
		return errmsg.New(errmsg.OpSourceRemove, errmsg.KindCatalog, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(`DELETE FROM track_search_fts WHERE file IN (SELECT file FROM tracks WHERE file LIKE ?)`, prefix+"%"); err != nil {
		return errmsg.New(errmsg.OpSourceRemove, errmsg.KindCatalog, err)
	}
	if _, err := tx.Exec(`DELETE FROM tracks WHERE file LIKE ?`, prefix+"%"); err != nil {
		return errmsg.New(errmsg.OpSourceRemove, errmsg.KindCatalog, err)
	}
	if _, err := tx.Exec(`DELETE FROM sources WHERE path = ?`, path); err != nil {
		return errmsg.New(errmsg.OpSourceRemove, errmsg.KindCatalog, err)
	}

	if err := tx.Commit(); err != nil {
		return errmsg.New(errmsg.OpSourceRemove, errmsg.KindCatalog, err)
	}
	return nil
}

// TrackCountBySource returns the number of catalog tracks nested under path.
func (c *Catalog) TrackCountBySource(path string) (int, error) {
	prefix := path
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM tracks WHERE file LIKE ?`, prefix+"%").Scan(&count)
	if err != nil {
		return 0, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	return count, nil
}

// SourceExists reports whether path is already a registered source.
func (c *Catalog) SourceExists(path string) (bool, error) {
	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM sources WHERE path = ?`, path).Scan(&count)
	if err != nil {
		return false, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	return count > 0, nil
}
