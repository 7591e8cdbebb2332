package events

// PlayState mirrors the daemon's running state.
type PlayState int

const (
	Stopped PlayState = iota
	Running
	Paused
)

func (s PlayState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// PlaybackUpdate is the sealed union of everything the playback daemon
// reports to the UI over the shared event channel.
type PlaybackUpdate interface {
	isPlaybackUpdate()
}

// MissedEvents tells a reconnecting observer that N events were dropped
// for it while disconnected, so it should trigger a full resync rather
// than apply further deltas on top of stale state.
type MissedEvents struct {
	Count uint64
}

func (MissedEvents) isPlaybackUpdate() {}

// VolumeChanged reports the new output volume, 0-100.
type VolumeChanged struct {
	Volume uint16
}

func (VolumeChanged) isPlaybackUpdate() {}

// SpeedChanged reports the new playback speed, as a percentage (100 = 1x).
type SpeedChanged struct {
	Speed int32
}

func (SpeedChanged) isPlaybackUpdate() {}

// PlayStateChanged reports a stopped/running/paused transition.
type PlayStateChanged struct {
	State PlayState
}

func (PlayStateChanged) isPlaybackUpdate() {}

// TrackChanged reports that the current playlist position moved, and
// optionally carries refreshed display data for it.
type TrackChanged struct {
	CurrentIndex int
	Updated      bool
	Title        *string
	ProgressMS   *int64
}

func (TrackChanged) isPlaybackUpdate() {}

// GaplessChanged reports a change to gapless-playback mode.
type GaplessChanged struct {
	Gapless bool
}

func (GaplessChanged) isPlaybackUpdate() {}

// PlaylistChanged wraps a single PlaylistUpdate mutation.
type PlaylistChanged struct {
	Mutation PlaylistUpdate
}

func (PlaylistChanged) isPlaybackUpdate() {}

// ProgressUpdate reports the current playback position, both in
// milliseconds; either may be nil when unknown (e.g. a live stream with
// no known total).
type ProgressUpdate struct {
	PositionMS *int64
	TotalMS    *int64
}

func (ProgressUpdate) isPlaybackUpdate() {}
