package events

// TrackSource identifies where a playlist entry's audio comes from. It
// is a sealed union with exactly three variants: a local file path, a
// remote URL, and a podcast episode media URL.
type TrackSource interface {
	isTrackSource()
}

// PathSource is a local filesystem path.
type PathSource string

func (PathSource) isTrackSource() {}

// URLSource is a remote stream URL.
type URLSource string

func (URLSource) isTrackSource() {}

// PodcastURLSource is a podcast episode's media URL.
type PodcastURLSource string

func (PodcastURLSource) isTrackSource() {}
