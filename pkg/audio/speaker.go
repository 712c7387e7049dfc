package audio

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/kerbaras/qari/pkg/utils"
	"github.com/rs/zerolog/log"
)

const (
	speakerBuffer   = time.Second / 10
	resampleQuality = 4
	eventBuffer     = 16
)

// Speaker plays MP3 recitations through the system audio device.
type Speaker struct {
	api *utils.API

	mu         sync.Mutex
	url        string
	generation int
	cancel     context.CancelFunc

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64

	ready    bool
	ended    bool
	wantPlay bool

	speakerInit bool
	speakerErr  error
	sampleRate  beep.SampleRate

	events chan Event
	closed bool

	initDevice func(rate beep.SampleRate, bufferSize int) error
}

func NewSpeaker() *Speaker {
	return &Speaker{
		// recitations can run for hours, so the download has no overall timeout
		api:        utils.NewAPI("", 0),
		level:      1,
		events:     make(chan Event, eventBuffer),
		initDevice: speaker.Init,
	}
}

func (s *Speaker) Events() <-chan Event {
	return s.events
}

func (s *Speaker) Load(url string) error {
	if url == "" {
		return fmt.Errorf("url cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("speaker is closed")
	}

	s.releaseLocked()
	s.url = url
	s.generation++
	gen := s.generation

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.fetch(ctx, gen, url)
	return nil
}

func (s *Speaker) fetch(ctx context.Context, gen int, url string) {
	body, err := s.api.Download(ctx, url)
	if err != nil {
		if ctx.Err() == nil {
			s.fail(gen, url, fmt.Errorf("failed to download audio: %w", err))
		}
		return
	}

	streamer, format, err := mp3.Decode(&memoryFile{Reader: bytes.NewReader(body)})
	if err != nil {
		s.fail(gen, url, fmt.Errorf("failed to decode audio: %w", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.closed {
		streamer.Close()
		return
	}

	s.attachLocked(streamer, format, url)
}

// attachLocked makes a decoded stream the ready source and honours a play
// request made while it was downloading.
func (s *Speaker) attachLocked(streamer beep.StreamSeekCloser, format beep.Format, url string) {
	s.streamer = streamer
	s.format = format
	s.ready = true
	s.ended = false
	s.initSpeakerLocked(format.SampleRate)

	log.Debug().Str("url", url).Dur("duration", format.SampleRate.D(streamer.Len())).Msg("audio ready")
	s.emitLocked(Event{Type: Ready, URL: url})

	if !s.wantPlay {
		return
	}
	if s.speakerErr != nil {
		s.wantPlay = false
		s.emitLocked(Event{Type: Rejected, URL: url, Err: fmt.Errorf("%w: %v", ErrPlaybackRejected, s.speakerErr)})
		return
	}
	s.startLocked()
	s.emitLocked(Event{Type: Played, URL: url})
}

func (s *Speaker) fail(gen int, url string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	log.Warn().Err(err).Str("url", url).Msg("audio load failed")
	s.wantPlay = false
	s.emitLocked(Event{Type: Failed, URL: url, Err: err})
}

func (s *Speaker) initSpeakerLocked(rate beep.SampleRate) {
	if s.speakerInit {
		return
	}
	s.speakerInit = true
	s.sampleRate = rate
	if err := s.initDevice(rate, rate.N(speakerBuffer)); err != nil {
		s.speakerErr = err
		log.Error().Err(err).Msg("failed to initialize speaker")
	}
}

// startLocked wires the decoded stream into the speaker, unpaused.
func (s *Speaker) startLocked() {
	var stream beep.Streamer = s.streamer
	if s.format.SampleRate != s.sampleRate {
		stream = beep.Resample(resampleQuality, s.format.SampleRate, s.sampleRate, stream)
	}

	gen := s.generation
	s.ctrl = &beep.Ctrl{Streamer: beep.Seq(stream, beep.Callback(func() {
		// runs on the speaker goroutine with the speaker lock held
		go s.finished(gen)
	}))}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	s.applyVolumeLocked()
	s.ended = false

	speaker.Play(s.volume)
}

func (s *Speaker) finished(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.closed {
		return
	}
	s.ended = true
	s.wantPlay = false
	s.emitLocked(Event{Type: Ended, URL: s.url})
}

func (s *Speaker) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.url == "" {
		return fmt.Errorf("no source loaded")
	}
	if s.speakerErr != nil {
		return fmt.Errorf("%w: %v", ErrPlaybackRejected, s.speakerErr)
	}

	s.wantPlay = true
	if !s.ready {
		return nil
	}

	switch {
	case s.ctrl == nil:
		s.startLocked()
	case s.ended:
		if err := s.streamer.Seek(0); err != nil {
			return fmt.Errorf("failed to rewind: %w", err)
		}
		s.startLocked()
	case s.ctrl.Paused:
		speaker.Lock()
		s.ctrl.Paused = false
		speaker.Unlock()
	default:
		return nil
	}

	s.emitLocked(Event{Type: Played, URL: s.url})
	return nil
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wantPlay = false
	if s.ctrl == nil || s.ctrl.Paused || s.ended {
		return
	}

	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	s.emitLocked(Event{Type: Paused, URL: s.url})
}

func (s *Speaker) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return !s.wantPlay
	}
	return s.ctrl.Paused || s.ended
}

func (s *Speaker) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return fmt.Errorf("source not ready")
	}

	n := s.format.SampleRate.N(position)
	if n < 0 {
		n = 0
	}
	if last := s.streamer.Len() - 1; n > last {
		n = last
	}

	speaker.Lock()
	err := s.streamer.Seek(n)
	speaker.Unlock()
	return err
}

func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = math.Max(0, math.Min(1, level))
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.applyVolumeLocked()
	speaker.Unlock()
}

// applyVolumeLocked maps the linear level onto the base-2 exponent of effects.Volume.
func (s *Speaker) applyVolumeLocked() {
	if s.level <= 0 {
		s.volume.Silent = true
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(s.level)
}

func (s *Speaker) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.format.SampleRate.D(s.streamer.Position())
}

func (s *Speaker) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.releaseLocked()
	s.closed = true
	close(s.events)
	return nil
}

// releaseLocked stops the current source and drops its resources.
func (s *Speaker) releaseLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.speakerInit && s.speakerErr == nil {
		speaker.Clear()
	}
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	s.ctrl = nil
	s.volume = nil
	s.ready = false
	s.ended = false
}

// emitLocked drops the event when nobody is listening.
func (s *Speaker) emitLocked(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

// memoryFile lets the decoder seek within a fully downloaded file.
type memoryFile struct {
	*bytes.Reader
}

func (m *memoryFile) Close() error { return nil }
