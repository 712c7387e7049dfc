package services

import "github.com/kerbaras/qari/pkg/data"

type EventType int

const (
	ChapterSelected EventType = iota
	ChapterLoaded
	LoadFailed
	PlaybackStateChanged
)

func (e EventType) String() string {
	switch e {
	case ChapterSelected:
		return "chapter_selected"
	case ChapterLoaded:
		return "chapter_loaded"
	case LoadFailed:
		return "load_failed"
	case PlaybackStateChanged:
		return "playback_state_changed"
	default:
		return "unknown"
	}
}

// Event is published by the Reader for the UI to react to. A LoadFailed
// with Index -1 reports an audio failure on the bound source.
type Event struct {
	Type    EventType
	Index   int
	Chapter data.Chapter
	View    *ChapterView
	Playing bool
	Err     error
}

// ChapterView is what the renderer shows for the current chapter.
type ChapterView struct {
	Index    int
	Chapter  data.Chapter
	Text     string
	AudioURL string
	Degraded bool
	Cached   bool
}
