package audio

import (
	"errors"
	"time"
)

// ErrPlaybackRejected is returned by Play when the environment refuses to start audio.
var ErrPlaybackRejected = errors.New("playback rejected")

type EventType int

const (
	Played EventType = iota
	Paused
	Ended
	Ready
	Failed
	// Rejected means a requested play could not start, e.g. no audio device.
	Rejected
)

func (e EventType) String() string {
	switch e {
	case Played:
		return "played"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Event is something that really happened to the media source.
type Event struct {
	Type EventType
	URL  string
	Err  error
}

// Media is a single audio source that can be swapped, played and sought.
type Media interface {
	// Load assigns a new source. It does not wait for the source to become ready.
	Load(url string) error
	Play() error
	Pause()
	Paused() bool
	Seek(position time.Duration) error
	// SetVolume takes a linear level between 0 and 1.
	SetVolume(level float64)
	Position() time.Duration
	// Duration is zero while unknown.
	Duration() time.Duration
	Events() <-chan Event
	Close() error
}
