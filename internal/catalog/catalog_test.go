package catalog

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/llehouerou/termusic-core/internal/errmsg"
)

// setupTestDB creates an in-memory, fully migrated catalog database.
func setupTestDB(t *testing.T) *Catalog {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := migrate(sqlDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(sqlDB)
}

func insertTrack(t *testing.T, c *Catalog, tr Track) {
	t.Helper()
	_, err := c.db.Exec(
		`INSERT INTO tracks (file, name, title, artist, album, genre, duration_ms, last_modified, last_position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tr.Path, tr.Name, tr.Title, tr.Artist, tr.Album, tr.Genre,
		tr.Duration.Milliseconds(), tr.LastModified, tr.LastPosition,
	)
	if err != nil {
		t.Fatalf("insertTrack: %v", err)
	}
	if _, err := c.db.Exec(
		"INSERT INTO track_search_fts (file, title, artist, album, genre) VALUES (?, ?, ?, ?, ?)",
		tr.Path, tr.Title, tr.Artist, tr.Album, tr.Genre,
	); err != nil {
		t.Fatalf("insertTrack fts: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	c := setupTestDB(t)
	if err := migrate(c.db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestAllTracksEmpty(t *testing.T) {
	c := setupTestDB(t)
	tracks, err := c.AllTracks()
	if err != nil {
		t.Fatalf("AllTracks: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("len = %d, want 0", len(tracks))
	}
}

func TestAllTracksSorted(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/b.mp3", Name: "b", Title: "Second", Artist: "Zeta"})
	insertTrack(t, c, Track{Path: "/m/a.mp3", Name: "a", Title: "First", Artist: "Abba"})

	tracks, err := c.AllTracks()
	if err != nil {
		t.Fatalf("AllTracks: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("len = %d, want 2", len(tracks))
	}
	if tracks[0].Artist != "Abba" || tracks[1].Artist != "Zeta" {
		t.Errorf("order = %v, want Abba before Zeta", tracks)
	}
}

func TestTrackByPath(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a.mp3", Name: "a", Title: "First", Artist: "Abba"})

	got, err := c.TrackByPath("/m/a.mp3")
	if err != nil {
		t.Fatalf("TrackByPath: %v", err)
	}
	if got.Title != "First" {
		t.Errorf("Title = %q, want First", got.Title)
	}

	_, err = c.TrackByPath("/missing.mp3")
	if err == nil {
		t.Fatal("expected not-found error for missing track")
	}
	var kindErr *errmsg.Error
	if !errors.As(err, &kindErr) || kindErr.Kind != errmsg.KindNotFound {
		t.Errorf("err = %v, want errmsg.KindNotFound", err)
	}
}

func TestTracksByArtist(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a1.mp3", Name: "a1", Title: "Song1", Artist: "Abba"})
	insertTrack(t, c, Track{Path: "/m/a2.mp3", Name: "a2", Title: "Song2", Artist: "Abba"})
	insertTrack(t, c, Track{Path: "/m/b1.mp3", Name: "b1", Title: "Song3", Artist: "Zeta"})

	tracks, err := c.TracksBy(CriterionArtist, "Abba")
	if err != nil {
		t.Fatalf("TracksBy: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("len = %d, want 2", len(tracks))
	}
}

func TestTracksByDirectory(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/music/albumA/01.mp3", Name: "01", Title: "T1"})
	insertTrack(t, c, Track{Path: "/music/albumA/02.mp3", Name: "02", Title: "T2"})
	insertTrack(t, c, Track{Path: "/music/albumB/01.mp3", Name: "01", Title: "T3"})

	tracks, err := c.TracksBy(CriterionDirectory, "/music/albumA")
	if err != nil {
		t.Fatalf("TracksBy: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("len = %d, want 2", len(tracks))
	}
}

func TestDistinctValues(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a1.mp3", Name: "a1", Artist: "Abba"})
	insertTrack(t, c, Track{Path: "/m/a2.mp3", Name: "a2", Artist: "Abba"})
	insertTrack(t, c, Track{Path: "/m/b1.mp3", Name: "b1", Artist: "Zeta"})

	values, err := c.DistinctValues(CriterionArtist)
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("len = %d, want 2 (%v)", len(values), values)
	}
	if values[0] != "Abba" || values[1] != "Zeta" {
		t.Errorf("values = %v, want [Abba Zeta]", values)
	}
}

func TestLastPosition(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a.mp3", Name: "a"})

	pos, err := c.GetLastPosition("/m/a.mp3")
	if err != nil {
		t.Fatalf("GetLastPosition: %v", err)
	}
	if pos != 0 {
		t.Errorf("pos = %d, want 0", pos)
	}

	if err := c.SetLastPosition("/m/a.mp3", 42); err != nil {
		t.Fatalf("SetLastPosition: %v", err)
	}
	pos, err = c.GetLastPosition("/m/a.mp3")
	if err != nil {
		t.Fatalf("GetLastPosition: %v", err)
	}
	if pos != 42 {
		t.Errorf("pos = %d, want 42", pos)
	}
}

func TestLastPositionUnknownPath(t *testing.T) {
	c := setupTestDB(t)
	pos, err := c.GetLastPosition("/missing.mp3")
	if err != nil {
		t.Fatalf("GetLastPosition: %v", err)
	}
	if pos != 0 {
		t.Errorf("pos = %d, want 0", pos)
	}
}

func TestPlaylistFacet(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a.mp3", Name: "a", Title: "A"})
	insertTrack(t, c, Track{Path: "/m/b.mp3", Name: "b", Title: "B"})

	if err := c.SetPlaylistTracks("road-trip", []string{"/m/a.mp3", "/m/b.mp3"}); err != nil {
		t.Fatalf("SetPlaylistTracks: %v", err)
	}

	tracks, err := c.TracksBy(CriterionPlaylist, "road-trip")
	if err != nil {
		t.Fatalf("TracksBy: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("len = %d, want 2", len(tracks))
	}

	names, err := c.DistinctValues(CriterionPlaylist)
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if len(names) != 1 || names[0] != "road-trip" {
		t.Errorf("names = %v, want [road-trip]", names)
	}
}

func TestSearch(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a.mp3", Name: "a", Title: "Bohemian Rhapsody", Artist: "Queen"})
	insertTrack(t, c, Track{Path: "/m/b.mp3", Name: "b", Title: "Another One Bites the Dust", Artist: "Queen"})
	insertTrack(t, c, Track{Path: "/m/c.mp3", Name: "c", Title: "Imagine", Artist: "John Lennon"})

	results, err := c.Search("Queen")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2 (%v)", len(results), results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := setupTestDB(t)
	results, err := c.Search("  ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results for blank query, got %v", results)
	}
}
