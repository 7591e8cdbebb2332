package events

// PlaylistUpdate is a sealed union describing a single mutation applied
// to the playlist. Each variant carries the minimum information an
// observer needs to mutate its own mirror of the playlist in place.
type PlaylistUpdate interface {
	isPlaylistUpdate()
}

// InsertTrack adds a track at AtIndex.
type InsertTrack struct {
	AtIndex  int
	Title    *string
	Duration int64 // milliseconds; 0 when unknown
	Source   TrackSource
}

func (InsertTrack) isPlaylistUpdate() {}

// RemoveTrack removes the track at AtIndex.
type RemoveTrack struct {
	AtIndex int
	Source  TrackSource
}

func (RemoveTrack) isPlaylistUpdate() {}

// ClearPlaylist empties the playlist.
type ClearPlaylist struct{}

func (ClearPlaylist) isPlaylistUpdate() {}

// SetLoopMode changes the loop mode. The mode values are owned by the
// playlist package; this event only carries the raw value through.
type SetLoopMode struct {
	Mode uint32
}

func (SetLoopMode) isPlaylistUpdate() {}

// SwapTracks exchanges the tracks at indices A and B.
type SwapTracks struct {
	A, B int
}

func (SwapTracks) isPlaylistUpdate() {}

// Shuffled replaces the playlist order wholesale. NewOrder[i] is the
// previous index of the track now at position i.
type Shuffled struct {
	NewOrder []int
}

func (Shuffled) isPlaylistUpdate() {}
