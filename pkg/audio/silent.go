package audio

import (
	"fmt"
	"sync"
	"time"
)

// Silent tracks playback state without an audio device, for --no-audio sessions.
type Silent struct {
	mu       sync.Mutex
	url      string
	playing  bool
	position time.Duration
	volume   float64
	events   chan Event
	closed   bool
}

func NewSilent() *Silent {
	return &Silent{volume: 1, events: make(chan Event, eventBuffer)}
}

func (s *Silent) Events() <-chan Event { return s.events }

func (s *Silent) Load(url string) error {
	if url == "" {
		return fmt.Errorf("url cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	s.playing = false
	s.position = 0
	s.emitLocked(Event{Type: Ready, URL: url})
	return nil
}

func (s *Silent) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.url == "" {
		return fmt.Errorf("no source loaded")
	}
	if !s.playing {
		s.playing = true
		s.emitLocked(Event{Type: Played, URL: s.url})
	}
	return nil
}

func (s *Silent) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playing {
		s.playing = false
		s.emitLocked(Event{Type: Paused, URL: s.url})
	}
}

func (s *Silent) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.playing
}

func (s *Silent) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = position
	return nil
}

func (s *Silent) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = level
}

func (s *Silent) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *Silent) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Silent) Duration() time.Duration { return 0 }

func (s *Silent) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	return nil
}

func (s *Silent) emitLocked(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}
