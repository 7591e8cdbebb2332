package catalog

import "testing"

func TestFilterTracksMatchesAcrossFields(t *testing.T) {
	tracks := []Track{
		{Path: "/m/a.mp3", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera"},
		{Path: "/m/b.mp3", Title: "Imagine", Artist: "John Lennon", Album: "Imagine"},
	}

	got := FilterTracks(tracks, "queen")
	if len(got) != 1 || got[0].Path != "/m/a.mp3" {
		t.Fatalf("FilterTracks(queen) = %v, want just /m/a.mp3", got)
	}

	got = FilterTracks(tracks, "")
	if len(got) != 2 {
		t.Fatalf("FilterTracks(\"\") = %v, want all tracks", got)
	}
}

func TestSearchShortQueryFallsBackToMatchScan(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a.mp3", Name: "a", Title: "U2", Artist: "U2"})
	insertTrack(t, c, Track{Path: "/m/b.mp3", Name: "b", Title: "Imagine", Artist: "John Lennon"})

	results, err := c.Search("u2")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "/m/a.mp3" {
		t.Fatalf("Search(u2) = %v, want just /m/a.mp3", results)
	}
}

func TestMatchScanUsesCatalogRowLazily(t *testing.T) {
	c := setupTestDB(t)
	insertTrack(t, c, Track{Path: "/m/a.mp3", Name: "a", Title: "Bohemian Rhapsody", Artist: "Queen"})
	insertTrack(t, c, Track{Path: "/m/b.mp3", Name: "b", Title: "Imagine", Artist: "John Lennon"})

	matches, err := c.matchScan("od")
	if err != nil {
		t.Fatalf("matchScan: %v", err)
	}
	if len(matches) != 1 || matches[0].Title != "Bohemian Rhapsody" {
		t.Fatalf("matchScan(od) = %v, want just Bohemian Rhapsody", matches)
	}
}
