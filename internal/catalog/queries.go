package catalog

import (
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"github.com/llehouerou/termusic-core/internal/errmsg"
	"github.com/llehouerou/termusic-core/internal/sortkey"
)

const trackColumns = "file, name, title, artist, album, genre, duration_ms, last_modified, last_position"

var errUnknownCriterion = errors.New("unknown criterion")

// AllTracks returns every track in the catalog, sorted by artist then
// title using natural, pinyin-aware collation.
func (c *Catalog) AllTracks() ([]Track, error) {
	rows, err := c.db.Query("SELECT " + trackColumns + " FROM tracks")
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	tracks, err := scanTracks(rows)
	if err != nil {
		return nil, err
	}
	sortkey.SortByName(tracks, func(t Track) string { return t.Artist + "\x00" + t.Title })
	return tracks, nil
}

// TracksBy returns every track whose facet named by criterion equals value.
// For CriterionDirectory, value is a directory path and tracks whose parent
// directory equals it are returned. For CriterionPlaylist, value is a
// playlist name and the track set is the playlist's member paths.
func (c *Catalog) TracksBy(criterion Criterion, value string) ([]Track, error) {
	switch criterion {
	case CriterionDirectory:
		return c.tracksByDirectory(value)
	case CriterionPlaylist:
		return c.tracksByPlaylist(value)
	default:
		col := criterion.column()
		if col == "" {
			return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindContractViolation, errUnknownCriterion)
		}
		rows, err := c.db.Query("SELECT "+trackColumns+" FROM tracks WHERE "+col+" = ?", value) //nolint:gosec // col is one of a fixed internal set, never user input
		if err != nil {
			return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
		}
		defer rows.Close()
		tracks, err := scanTracks(rows)
		if err != nil {
			return nil, err
		}
		sortkey.SortByName(tracks, func(t Track) string { return t.Title })
		return tracks, nil
	}
}

func (c *Catalog) tracksByDirectory(dir string) ([]Track, error) {
	dir = filepath.Clean(dir)
	rows, err := c.db.Query("SELECT " + trackColumns + " FROM tracks")
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	all, err := scanTracks(rows)
	if err != nil {
		return nil, err
	}

	var tracks []Track
	for _, t := range all {
		if filepath.Dir(t.Path) == dir {
			tracks = append(tracks, t)
		}
	}
	sortkey.SortByName(tracks, func(t Track) string { return t.Title })
	return tracks, nil
}

// tracksByPlaylist looks up a playlist's member paths and returns the
// matching catalog rows via a single batched IN (...) query, preserving
// the catalog's own sort rather than playlist order.
func (c *Catalog) tracksByPlaylist(name string) ([]Track, error) {
	paths, err := c.playlistTrackPaths(name)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	placeholders := make([]byte, 0, len(paths)*2)
	args := make([]any, len(paths))
	for i, p := range paths {
		if i > 0 {
			placeholders = append(placeholders, ',', '?')
		} else {
			placeholders = append(placeholders, '?')
		}
		args[i] = p
	}

	rows, err := c.db.Query("SELECT "+trackColumns+" FROM tracks WHERE file IN ("+string(placeholders)+")", args...)
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	tracks, err := scanTracks(rows)
	if err != nil {
		return nil, err
	}
	sortkey.SortByName(tracks, func(t Track) string { return t.Title })
	return tracks, nil
}

// playlistTrackPaths resolves a playlist name to its member file paths.
// Playlists are file-backed (see the playlist package), not catalog-owned;
// the catalog only knows them as a facet to filter tracks by, so this
// expects the caller to have already expanded the playlist file into
// absolute paths and registered them, which SetPlaylistTracks does.
func (c *Catalog) playlistTrackPaths(name string) ([]string, error) {
	rows, err := c.db.Query("SELECT path FROM playlist_members WHERE playlist = ? ORDER BY position", name)
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// SetPlaylistTracks replaces the member paths the playlist facet uses for
// name, in order.
func (c *Catalog) SetPlaylistTracks(name string, paths []string) error {
	_, err := c.db.Exec("DELETE FROM playlist_members WHERE playlist = ?", name)
	if err != nil {
		return errmsg.New(errmsg.OpPlaylistAddTrack, errmsg.KindCatalog, err)
	}
	for i, p := range paths {
		if _, err := c.db.Exec(
			"INSERT INTO playlist_members (playlist, position, path) VALUES (?, ?, ?)",
			name, i, p,
		); err != nil {
			return errmsg.New(errmsg.OpPlaylistAddTrack, errmsg.KindCatalog, err)
		}
	}
	return nil
}

// DistinctValues returns the sorted, duplicate-free set of values the
// catalog holds for criterion. Directory and playlist facets are derived
// rather than stored columns.
func (c *Catalog) DistinctValues(criterion Criterion) ([]string, error) {
	switch criterion {
	case CriterionDirectory:
		return c.distinctDirectories()
	case CriterionPlaylist:
		return c.distinctPlaylists()
	default:
		col := criterion.column()
		if col == "" {
			return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindContractViolation, errUnknownCriterion)
		}
		rows, err := c.db.Query("SELECT DISTINCT " + col + " FROM tracks WHERE " + col + " != ''") //nolint:gosec // col is one of a fixed internal set
		if err != nil {
			return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
		}
		defer rows.Close()

		var values []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		sortkey.SortStrings(values)
		return values, nil
	}
}

func (c *Catalog) distinctDirectories() ([]string, error) {
	rows, err := c.db.Query("SELECT file FROM tracks")
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var dirs []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortkey.SortStrings(dirs)
	return dirs, nil
}

func (c *Catalog) distinctPlaylists() ([]string, error) {
	rows, err := c.db.Query("SELECT DISTINCT playlist FROM playlist_members")
	if err != nil {
		return nil, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortkey.SortStrings(names)
	return names, nil
}

// TrackByPath returns the track at path, or a not-found error if absent.
func (c *Catalog) TrackByPath(path string) (Track, error) {
	row := c.db.QueryRow("SELECT "+trackColumns+" FROM tracks WHERE file = ?", path)
	t, err := scanTrack(row)
	if err == sql.ErrNoRows {
		return Track{}, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindNotFound, err)
	}
	if err != nil {
		return Track{}, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	return t, nil
}

// GetLastPosition returns the saved resume position, in seconds, for path.
// Returns 0 if path is not in the catalog.
func (c *Catalog) GetLastPosition(path string) (int, error) {
	var pos int
	err := c.db.QueryRow("SELECT last_position FROM tracks WHERE file = ?", path).Scan(&pos)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errmsg.New(errmsg.OpCatalogQuery, errmsg.KindCatalog, err)
	}
	return pos, nil
}

// SetLastPosition saves the resume position, in seconds, for path.
func (c *Catalog) SetLastPosition(path string, seconds int) error {
	_, err := c.db.Exec("UPDATE tracks SET last_position = ? WHERE file = ?", seconds, path)
	if err != nil {
		return errmsg.New(errmsg.OpCatalogPosition, errmsg.KindCatalog, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (Track, error) {
	var t Track
	var durationMS int64
	if err := row.Scan(&t.Path, &t.Name, &t.Title, &t.Artist, &t.Album, &t.Genre, &durationMS, &t.LastModified, &t.LastPosition); err != nil {
		return Track{}, err
	}
	t.Duration = time.Duration(durationMS) * time.Millisecond
	return t, nil
}

func scanTracks(rows *sql.Rows) ([]Track, error) {
	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
