package playlist

import (
	"math/rand/v2"
	"sort"
)

// RepeatMode defines the repeat behavior a PlayingQueue advances by.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
	RepeatRadio
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	case RepeatRadio:
		return "Radio"
	default:
		return "Unknown"
	}
}

// defaultHistorySize bounds how many track-list snapshots a PlayingQueue
// keeps for Undo/Redo.
const defaultHistorySize = 50

// PlayingQueue wraps a Playlist with playback state: the current position,
// repeat mode, shuffle toggle, and an undo/redo history of track-list
// snapshots.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing playing
	repeatMode   RepeatMode
	shuffle      bool
	history      *QueueHistory
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	q := &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
		history:      NewQueueHistory(defaultHistorySize),
	}
	q.history.Push(nil)
	return q
}

// Current returns the currently playing track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= q.playlist.Len() {
		return nil
	}
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// nextIndex computes the index Next/PeekNext/HasNext would move to, without
// mutating the queue. The second return is false if there is no next track
// under the current repeat mode.
func (q *PlayingQueue) nextIndex() (int, bool) {
	n := q.playlist.Len()
	if n == 0 || q.currentIndex < 0 {
		return 0, false
	}

	switch {
	case q.repeatMode == RepeatOne:
		return q.currentIndex, true
	case q.shuffle:
		return q.randomIndexExcluding(q.currentIndex), true
	case q.currentIndex+1 < n:
		return q.currentIndex + 1, true
	case q.repeatMode == RepeatAll:
		return 0, true
	default:
		return 0, false
	}
}

func (q *PlayingQueue) randomIndexExcluding(exclude int) int {
	n := q.playlist.Len()
	if n <= 1 {
		return exclude
	}
	idx := rand.IntN(n - 1)
	if idx >= exclude {
		idx++
	}
	return idx
}

// Next advances to the next track and returns it.
// Returns nil if there is no next track under the current repeat mode.
func (q *PlayingQueue) Next() *Track {
	idx, ok := q.nextIndex()
	if !ok {
		return nil
	}
	q.currentIndex = idx
	return q.Current()
}

// HasNext returns true if calling Next would move to a track.
func (q *PlayingQueue) HasNext() bool {
	_, ok := q.nextIndex()
	return ok
}

// PeekNext returns the track Next would move to, without changing position.
func (q *PlayingQueue) PeekNext() *Track {
	idx, ok := q.nextIndex()
	if !ok {
		return nil
	}
	return q.playlist.Track(idx)
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Add appends tracks to the queue without changing playback.
func (q *PlayingQueue) Add(tracks ...Track) {
	q.playlist.Add(tracks...)
	q.snapshot()
}

// AddAndPlay appends tracks and jumps to the first added track.
// Returns the track to play.
func (q *PlayingQueue) AddAndPlay(tracks ...Track) *Track {
	if len(tracks) == 0 {
		return nil
	}
	insertIndex := q.playlist.Len()
	q.playlist.Add(tracks...)
	q.currentIndex = insertIndex
	q.snapshot()
	return q.Current()
}

// Replace clears the queue, adds tracks, and sets index to 0.
// Returns the first track to play.
func (q *PlayingQueue) Replace(tracks ...Track) *Track {
	q.playlist.Clear()
	q.currentIndex = -1
	if len(tracks) == 0 {
		q.snapshot()
		return nil
	}
	q.playlist.Add(tracks...)
	q.currentIndex = 0
	q.snapshot()
	return q.Current()
}

// RemoveAt removes the track at the given index.
// Adjusts currentIndex if necessary.
func (q *PlayingQueue) RemoveAt(index int) bool {
	if !q.playlist.Remove(index) {
		return false
	}

	// Adjust current index after removal
	if q.currentIndex > index {
		q.currentIndex--
	} else if q.currentIndex == index {
		// Removed current track - there is no current track any more
		q.currentIndex = -1
	}

	q.snapshot()
	return true
}

// Clear removes all tracks and resets playback.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
	q.snapshot()
}

// snapshot records the queue's current track list in its undo/redo history.
func (q *PlayingQueue) snapshot() {
	q.history.Push(q.playlist.Tracks())
}

// Undo restores the track list to its state before the last mutating
// operation (Add/AddAndPlay/Replace/RemoveAt/Clear/MoveIndices). Returns
// false if there is nothing to undo.
func (q *PlayingQueue) Undo() bool {
	tracks, ok := q.history.Undo()
	if !ok {
		return false
	}
	q.restoreTracks(tracks)
	return true
}

// Redo reapplies a track-list state previously reverted by Undo. Returns
// false if there is nothing to redo.
func (q *PlayingQueue) Redo() bool {
	tracks, ok := q.history.Redo()
	if !ok {
		return false
	}
	q.restoreTracks(tracks)
	return true
}

// restoreTracks replaces the queue's track list with tracks, keeping
// currentIndex on the same track by path when possible.
func (q *PlayingQueue) restoreTracks(tracks []Track) {
	currentPath, hadCurrent := q.currentTrackPath()
	q.playlist.Clear()
	q.playlist.Add(tracks...)
	if hadCurrent {
		q.restoreCurrentByPath(currentPath)
	}
	if q.currentIndex >= q.playlist.Len() {
		q.currentIndex = q.playlist.Len() - 1
	}
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeatMode
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode RepeatMode) {
	q.repeatMode = mode
}

// CycleRepeatMode advances to the next repeat mode (Off -> All -> One ->
// Radio -> Off) and returns it.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	q.repeatMode = (q.repeatMode + 1) % (RepeatRadio + 1)
	return q.repeatMode
}

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle sets the shuffle state.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	q.shuffle = enabled
}

// ToggleShuffle toggles shuffle and returns the new state.
func (q *PlayingQueue) ToggleShuffle() bool {
	q.shuffle = !q.shuffle
	return q.shuffle
}

// MoveIndices moves the tracks at the given indices by delta positions
// (negative moves them earlier, positive moves them later), one step at a
// time, treating the selection as a contiguous block that swaps places with
// its nearest unselected neighbor on each step. Returns the selection's new
// indices, or false if the move would push the block past either end.
func (q *PlayingQueue) MoveIndices(indices []int, delta int) ([]int, bool) {
	if len(indices) == 0 || delta == 0 {
		return nil, false
	}

	n := q.playlist.Len()
	selected := append([]int(nil), indices...)
	sort.Ints(selected)
	for _, idx := range selected {
		if idx < 0 || idx >= n {
			return nil, false
		}
	}

	step := 1
	if delta < 0 {
		step = -1
	}

	currentTrackPath, hadCurrent := q.currentTrackPath()

	steps := delta
	if steps < 0 {
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		moved, ok := q.shiftSelectionOnce(selected, step)
		if !ok {
			return nil, false
		}
		selected = moved
	}

	if hadCurrent {
		q.restoreCurrentByPath(currentTrackPath)
	}

	q.snapshot()
	return selected, true
}

func (q *PlayingQueue) currentTrackPath() (string, bool) {
	if t := q.Current(); t != nil {
		return t.Path, true
	}
	return "", false
}

func (q *PlayingQueue) restoreCurrentByPath(path string) {
	for i, t := range q.playlist.Tracks() {
		if t.Path == path {
			q.currentIndex = i
			return
		}
	}
}

// shiftSelectionOnce moves the sorted selection one position in the given
// direction, swapping it with the single adjacent unselected track.
func (q *PlayingQueue) shiftSelectionOnce(selected []int, step int) ([]int, bool) {
	n := q.playlist.Len()
	minIdx, maxIdx := selected[0], selected[len(selected)-1]

	switch step {
	case -1:
		pivot := minIdx - 1
		if pivot < 0 {
			return nil, false
		}
		q.playlist.Move(pivot, maxIdx)
		shifted := make([]int, len(selected))
		for i, idx := range selected {
			shifted[i] = idx - 1
		}
		return shifted, true
	case 1:
		pivot := maxIdx + 1
		if pivot >= n {
			return nil, false
		}
		q.playlist.Move(pivot, minIdx)
		shifted := make([]int, len(selected))
		for i, idx := range selected {
			shifted[i] = idx + 1
		}
		return shifted, true
	default:
		return nil, false
	}
}
