package playlist

import (
	"strconv"
	"time"

	"github.com/llehouerou/termusic-core/internal/catalog"
)

// FromCatalogTrack converts a catalog track to a playlist track.
func FromCatalogTrack(t catalog.Track) Track {
	return Track{
		Path:     t.Path,
		Title:    t.Title,
		Artist:   t.Artist,
		Album:    t.Album,
		Duration: t.Duration,
	}
}

// FromCatalogTracks converts a slice of catalog tracks to playlist tracks.
func FromCatalogTracks(tracks []catalog.Track) []Track {
	result := make([]Track, len(tracks))
	for i, t := range tracks {
		result[i] = FromCatalogTrack(t)
	}
	return result
}

// FormatDuration formats a duration as MM:SS, growing past two digits of
// minutes for tracks (or, in practice, queues) longer than 99:59.
func FormatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return padInt(m) + ":" + padInt(s)
}

func padInt(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
