package podcast

import (
	"encoding/xml"
	"io"
	"os"
	"time"

	"github.com/llehouerou/termusic-core/internal/errmsg"
)

// opmlDocument mirrors the small subset of the OPML 1.0/1.1/2.0 schema
// this package cares about. OPML's three versions share the same
// head/body/outline shape (2.0 merely adds optional attributes), so one
// set of structs parses all three, following the teacher pack's own
// precedent of hand-tagging a small, fully-specified XML schema instead
// of reaching for a library (micahg-cobblepod/internal/podcast/rss.go).
type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text   string `xml:"text,attr"`
	Title  string `xml:"title,attr"`
	Type   string `xml:"type,attr"`
	XMLURL string `xml:"xmlUrl,attr"`
}

// ImportFeed is a feed entry read from an OPML file, ready to be
// checked. It carries no catalog id: OPML import always produces
// candidate new feeds; de-duplication against the existing catalog is
// the caller's job, per spec.md §4.2.
type ImportFeed struct {
	URL   string
	Title string
}

// ImportOPML parses an OPML 1.0/1.1/2.0 document, extracting every
// outline with an xmlUrl attribute. The display title prefers the
// title attribute, falling back to text when title is empty.
func ImportOPML(r io.Reader) ([]ImportFeed, error) {
	var doc opmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errmsg.New(errmsg.OpPodcastImportOPML, errmsg.KindParse, err)
	}

	feeds := make([]ImportFeed, 0, len(doc.Body.Outlines))
	for _, o := range doc.Body.Outlines {
		if o.XMLURL == "" {
			continue
		}
		title := o.Title
		if title == "" {
			title = o.Text
		}
		feeds = append(feeds, ImportFeed{URL: o.XMLURL, Title: title})
	}
	return feeds, nil
}

// ImportOPMLFile is a convenience wrapper around ImportOPML that reads
// path from disk.
func ImportOPMLFile(path string) ([]ImportFeed, error) {
	f, err := os.Open(path) //nolint:gosec // path is operator-supplied, not request input
	if err != nil {
		return nil, errmsg.New(errmsg.OpPodcastImportOPML, errmsg.KindIO, err)
	}
	defer f.Close()
	return ImportOPML(f)
}

// ExportOPML writes an OPML 2.0 document listing every feed in feeds,
// in order, to w. The head carries the fixed title "Termusic Podcast
// Feeds" and the current time as an RFC-2822 date, per spec.md §6.
func ExportOPML(w io.Writer, feeds []Feed) error {
	doc := opmlDocument{
		Version: "2.0",
		Head: opmlHead{
			Title:       "Termusic Podcast Feeds",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: opmlBody{Outlines: make([]opmlOutline, 0, len(feeds))},
	}
	for _, f := range feeds {
		doc.Body.Outlines = append(doc.Body.Outlines, opmlOutline{
			Text:   f.Title,
			Title:  f.Title,
			Type:   "rss",
			XMLURL: f.URL,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errmsg.New(errmsg.OpPodcastExportOPML, errmsg.KindIO, err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errmsg.New(errmsg.OpPodcastExportOPML, errmsg.KindIO, err)
	}
	return nil
}

// ExportOPMLFile is a convenience wrapper around ExportOPML that
// creates (or truncates) path and writes to it, releasing the file
// handle on every exit path.
func ExportOPMLFile(path string, feeds []Feed) error {
	f, err := os.Create(path) //nolint:gosec // path is operator-supplied, not request input
	if err != nil {
		return errmsg.New(errmsg.OpPodcastExportOPML, errmsg.KindIO, err)
	}
	defer f.Close()
	return ExportOPML(f, feeds)
}
