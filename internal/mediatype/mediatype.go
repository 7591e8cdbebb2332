// Package mediatype gates which files the catalog scanner admits and reads
// their tag metadata.
package mediatype

import (
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Supported file extensions, lowercase and dot-prefixed.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// IsSupported returns true if path has a recognized music file extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(path)
	idx := strings.LastIndex(ext, ".")
	if idx < 0 {
		return false
	}
	ext = ext[idx:]
	switch ext {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtM4A, ExtMP4:
		return true
	default:
		return false
	}
}

// Metadata holds the tag fields the catalog persists for a track.
type Metadata struct {
	Title        string
	Artist       string
	AlbumArtist  string
	Album        string
	Genre        string
	TrackNumber  int
	DiscNumber   int
	Date         string // release date, YYYY or YYYY-MM-DD
	OriginalDate string
}

// Year derives the year from Date. Returns 0 if Date is empty or unparsable.
func (m Metadata) Year() int {
	return yearOf(m.Date)
}

func yearOf(date string) int {
	if date == "" {
		return 0
	}
	y := date
	if len(y) > 4 {
		y = y[:4]
	}
	year, _ := strconv.Atoi(y)
	return year
}

// Read extracts tag metadata from path using dhowden/tag. Title falls back
// to the file's base name when the tag is empty, matching the behavior of
// files with no embedded title frame.
func Read(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Metadata{}, err
	}

	title := m.Title()
	if title == "" {
		title = baseName(path)
	}

	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}

	track, _ := m.Track()
	disc, _ := m.Disc()

	return Metadata{
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		Genre:       m.Genre(),
		TrackNumber: track,
		DiscNumber:  disc,
		Date:        yearToDate(m.Year()),
	}, nil
}

func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func baseName(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
