package catalog

import (
	"database/sql"
	"strings"
	"unicode/utf8"

	"github.com/llehouerou/termusic-core/internal/errmsg"
)

// SearchResult wraps one matched track. Search itself returns the matched
// tracks directly as []Track.
type SearchResult struct {
	Track Track
}

func upsertFTS(tx *sql.Tx, path, title, artist, album, genre string) error {
	if _, err := tx.Exec("DELETE FROM track_search_fts WHERE file = ?", path); err != nil {
		return err
	}
	_, err := tx.Exec(
		"INSERT INTO track_search_fts (file, title, artist, album, genre) VALUES (?, ?, ?, ?, ?)",
		path, title, artist, album, genre,
	)
	return err
}

func deleteFTS(tx *sql.Tx, path string) error {
	_, err := tx.Exec("DELETE FROM track_search_fts WHERE file = ?", path)
	return err
}

// Search returns tracks that contain query as a substring. Queries of 3 or
// more characters use the trigram FTS5 index over title, artist, album and
// genre; shorter queries fall back to matchScan, which matches the path,
// title, artist and album (not the genre), since the
// trigram tokenizer only ever indexes 3-character tokens and a MATCH query
// under that length would spuriously return nothing — a real gap during
// incremental search, which is typically driven one keystroke at a time.
func (c *Catalog) Search(query string) ([]Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(query) < 3 {
		return c.matchScan(query)
	}

	rows, err := c.db.Query(
		`SELECT t.file, t.name, t.title, t.artist, t.album, t.genre, t.duration_ms, t.last_modified, t.last_position
		 FROM track_search_fts f
		 JOIN tracks t ON t.file = f.file
		 WHERE track_search_fts MATCH ?
		 ORDER BY rank`,
		escapeFTSQuery(query),
	)
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	return scanTracks(rows)
}

// escapeFTSQuery quotes query as an FTS5 string literal so that punctuation
// and FTS operator characters in free-text input are matched literally
// rather than parsed as query syntax.
func escapeFTSQuery(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}
