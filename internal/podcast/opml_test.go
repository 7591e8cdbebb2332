package podcast

import (
	"bytes"
	"strings"
	"testing"
)

func TestOPMLRoundTrip(t *testing.T) {
	feeds := []Feed{
		{URL: "https://example.com/u1.xml", Title: "t1"},
		{URL: "https://example.com/u2.xml", Title: "t2"},
	}

	var buf bytes.Buffer
	if err := ExportOPML(&buf, feeds); err != nil {
		t.Fatalf("ExportOPML: %v", err)
	}

	imported, err := ImportOPML(&buf)
	if err != nil {
		t.Fatalf("ImportOPML: %v", err)
	}

	if len(imported) != 2 {
		t.Fatalf("got %d feeds, want 2", len(imported))
	}
	for i, want := range feeds {
		if imported[i].URL != want.URL || imported[i].Title != want.Title {
			t.Errorf("feed %d = %+v, want {URL:%s Title:%s}", i, imported[i], want.URL, want.Title)
		}
	}
}

func TestExportOPMLHead(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportOPML(&buf, nil); err != nil {
		t.Fatalf("ExportOPML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `Termusic Podcast Feeds`) {
		t.Errorf("export missing head title: %s", out)
	}
	if !strings.Contains(out, `version="2.0"`) {
		t.Errorf("export missing version 2.0: %s", out)
	}
}

func TestImportOPMLTitleFallsBackToText(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<opml version="1.0">
  <head><title>Feeds</title></head>
  <body>
    <outline text="Display Text" xmlUrl="https://example.com/feed.xml"/>
    <outline text="Ignored" title="" xmlUrl=""/>
  </body>
</opml>`

	feeds, err := ImportOPML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ImportOPML: %v", err)
	}
	if len(feeds) != 1 {
		t.Fatalf("got %d feeds, want 1 (outline with empty xmlUrl must be skipped)", len(feeds))
	}
	if feeds[0].Title != "Display Text" {
		t.Errorf("title = %q, want fallback to text %q", feeds[0].Title, "Display Text")
	}
}

func TestImportOPMLPrefersTitleOverText(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<opml version="2.0">
  <body>
    <outline text="fallback" title="Real Title" xmlUrl="https://example.com/feed.xml" type="rss"/>
  </body>
</opml>`

	feeds, err := ImportOPML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ImportOPML: %v", err)
	}
	if len(feeds) != 1 || feeds[0].Title != "Real Title" {
		t.Fatalf("feeds = %+v, want title 'Real Title'", feeds)
	}
}
