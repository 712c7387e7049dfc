package services

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/kerbaras/qari/pkg/audio"
	"github.com/kerbaras/qari/pkg/data"
	"github.com/rs/zerolog/log"
)

// PlayerState is the lifecycle of the single media source.
type PlayerState int

const (
	StateIdle PlayerState = iota
	StateLoading
	StatePlaying
	StatePaused
	StateEnded
)

func (s PlayerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// VolumeLevel is the icon tier shown next to the volume slider.
type VolumeLevel int

const (
	VolumeMuted VolumeLevel = iota
	VolumeLow
	VolumeHigh
)

func VolumeLevelFor(percent int) VolumeLevel {
	switch {
	case percent <= 0:
		return VolumeMuted
	case percent < 50:
		return VolumeLow
	default:
		return VolumeHigh
	}
}

func (v VolumeLevel) String() string {
	switch v {
	case VolumeMuted:
		return "muted"
	case VolumeLow:
		return "low"
	default:
		return "high"
	}
}

func (v VolumeLevel) Icon() string {
	switch v {
	case VolumeMuted:
		return "🔇"
	case VolumeLow:
		return "🔉"
	default:
		return "🔊"
	}
}

// Playback owns the media source. The play intent survives chapter switches;
// IsPlaying only follows events reported by the media.
type Playback struct {
	media       audio.Media
	resumeDelay time.Duration

	mu      sync.Mutex
	state   PlayerState
	url     string
	chapter data.Chapter
	bound   bool
	intent  bool
	playing bool
	volume  int
	timer   *time.Timer
}

func NewPlayback(media audio.Media, volumePercent int, resumeDelay time.Duration) *Playback {
	p := &Playback{media: media, resumeDelay: resumeDelay}
	p.SetVolume(volumePercent)
	return p
}

// Bind swaps the media source. Playback resumes on the new source after the
// resume delay when the listener wanted audio before the switch.
func (p *Playback) Bind(url string, chapter data.Chapter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if !p.media.Paused() {
		p.media.Pause()
	}
	if err := p.media.Load(url); err != nil {
		return fmt.Errorf("failed to load audio: %w", err)
	}

	// the previous source is gone, so nothing is playing until the media says so
	p.url = url
	p.chapter = chapter
	p.bound = true
	p.playing = false
	p.state = StateLoading

	if !p.intent {
		return nil
	}
	if p.resumeDelay <= 0 {
		p.resumeLocked(url)
		return nil
	}
	p.timer = time.AfterFunc(p.resumeDelay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.resumeLocked(url)
	})
	return nil
}

func (p *Playback) resumeLocked(url string) {
	if p.url != url {
		return
	}
	if err := p.media.Play(); err != nil {
		log.Info().Err(err).Msg("auto-play prevented")
		p.intent = false
	}
}

// TogglePlayPause plays when paused and pauses when playing.
func (p *Playback) TogglePlayPause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.bound {
		return nil
	}
	if p.media.Paused() {
		p.intent = true
		if err := p.media.Play(); err != nil {
			p.intent = false
			return fmt.Errorf("failed to play: %w", err)
		}
		return nil
	}
	p.intent = false
	p.media.Pause()
	return nil
}

// Seek moves to a fraction of the track, clamped to [0, 1]. Unknown durations are ignored.
func (p *Playback) Seek(fraction float64) error {
	if math.IsNaN(fraction) {
		return nil
	}
	fraction = math.Max(0, math.Min(1, fraction))

	p.mu.Lock()
	defer p.mu.Unlock()

	duration := p.media.Duration()
	if !p.bound || duration <= 0 {
		return nil
	}
	return p.media.Seek(time.Duration(fraction * float64(duration)))
}

// SetVolume takes a percentage, clamped to [0, 100].
func (p *Playback) SetVolume(percent int) VolumeLevel {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = percent
	p.media.SetVolume(float64(percent) / 100)
	return VolumeLevelFor(percent)
}

func (p *Playback) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Observe applies a media event. It reports whether the playing flag changed.
func (p *Playback) Observe(ev audio.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ev.URL != "" && ev.URL != p.url {
		return false
	}

	was := p.playing
	switch ev.Type {
	case audio.Played:
		p.playing = true
		p.state = StatePlaying
	case audio.Paused:
		p.playing = false
		p.state = StatePaused
	case audio.Ended:
		p.playing = false
		p.state = StateEnded
	case audio.Ready:
		if p.state == StateLoading {
			p.state = StatePaused
		}
	case audio.Failed:
		p.playing = false
		p.state = StateIdle
	case audio.Rejected:
		p.playing = false
		p.intent = false
		p.state = StatePaused
	}
	return was != p.playing
}

func (p *Playback) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Intent reports whether the listener asked for audio.
func (p *Playback) Intent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.intent
}

func (p *Playback) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Playback) Source() (string, data.Chapter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url, p.chapter
}

// Events exposes the media's event stream for the caller to feed back through Observe.
func (p *Playback) Events() <-chan audio.Event {
	return p.media.Events()
}

func (p *Playback) Progress() (position, duration time.Duration) {
	return p.media.Position(), p.media.Duration()
}

// Stop pauses active playback and cancels a pending resume. The source stays bound.
func (p *Playback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Playback) stopLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if !p.media.Paused() {
		p.media.Pause()
	}
	p.intent = false
}

// Close stops playback and releases the media.
func (p *Playback) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.state = StateIdle
	p.bound = false
	return p.media.Close()
}

// FormatTime renders seconds as M:SS. Unknown values render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDuration is FormatTime for time.Duration values.
func FormatDuration(d time.Duration) string {
	return FormatTime(d.Seconds())
}
