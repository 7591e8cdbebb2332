package catalog

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/llehouerou/termusic-core/internal/errmsg"
)

// Matchable is the narrow capability incremental search matches
// against: a track's path, title, artist, album, and duration. Two
// concrete types satisfy it — an already materialized Track, and a
// lazily-scanned catalogRow streamed straight off a cursor — instead
// of a shared base type or inheritance, per spec's dynamic-dispatch
// design note.
type Matchable interface {
	MatchPath() string
	MatchTitle() string
	MatchArtist() string
	MatchAlbum() string
	MatchDuration() time.Duration
}

func (t Track) MatchPath() string           { return t.Path }
func (t Track) MatchTitle() string           { return t.Title }
func (t Track) MatchArtist() string          { return t.Artist }
func (t Track) MatchAlbum() string           { return t.Album }
func (t Track) MatchDuration() time.Duration { return t.Duration }

// catalogRow adapts a single row of an open tracks cursor to
// Matchable, scanning its columns only the first time a Match* method
// is called rather than up front, so a full-table streaming scan
// never materializes more than the current row.
type catalogRow struct {
	rows    *sql.Rows
	once    sync.Once
	track   Track
	scanErr error
}

func (r *catalogRow) scan() {
	r.once.Do(func() {
		r.track, r.scanErr = scanTrack(r.rows)
	})
}

func (r *catalogRow) MatchPath() string           { r.scan(); return r.track.Path }
func (r *catalogRow) MatchTitle() string           { r.scan(); return r.track.Title }
func (r *catalogRow) MatchArtist() string          { r.scan(); return r.track.Artist }
func (r *catalogRow) MatchAlbum() string           { r.scan(); return r.track.Album }
func (r *catalogRow) MatchDuration() time.Duration { r.scan(); return r.track.Duration }

// MatchQuery reports whether m's path, title, artist, or album
// contains query as a case-insensitive substring. Used against both
// in-memory Track values (FilterTracks, refining an already-fetched
// result set keystroke by keystroke) and catalogRow (Search's
// short-query fallback below) through the same Matchable surface.
func MatchQuery(m Matchable, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.MatchPath()), q) ||
		strings.Contains(strings.ToLower(m.MatchTitle()), q) ||
		strings.Contains(strings.ToLower(m.MatchArtist()), q) ||
		strings.Contains(strings.ToLower(m.MatchAlbum()), q)
}

// FilterTracks applies MatchQuery over an already materialized slice
// of Track, e.g. a caller's cached AllTracks() result being refined
// in-memory on each incremental-search keystroke without a further DB
// round trip.
func FilterTracks(tracks []Track, query string) []Track {
	var out []Track
	for _, t := range tracks {
		if MatchQuery(t, query) {
			out = append(out, t)
		}
	}
	return out
}

// matchScan streams every row in the catalog through Matchable's
// MatchQuery via catalogRow. Used by Search for queries shorter than
// the trigram FTS5 index's minimum 3-character token, where a MATCH
// query would spuriously return nothing.
func (c *Catalog) matchScan(query string) ([]Track, error) {
	rows, err := c.db.Query("SELECT " + trackColumns + " FROM tracks")
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	var matches []Track
	for rows.Next() {
		row := &catalogRow{rows: rows}
		matched := MatchQuery(row, query)
		if row.scanErr != nil {
			return nil, row.scanErr
		}
		if matched {
			matches = append(matches, row.track)
		}
	}
	return matches, rows.Err()
}
