package services

import (
	"context"
	"errors"
	"sync"

	"github.com/kerbaras/qari/pkg/audio"
	"github.com/kerbaras/qari/pkg/bridge"
	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/sources"
	"github.com/rs/zerolog/log"
)

// ErrSuperseded is returned by a load whose result was discarded because a
// newer load was issued while it was in flight.
var ErrSuperseded = errors.New("chapter load superseded")

const eventBuffer = 64

// Reader is the application state: catalog, current chapter, navigation and playback.
type Reader struct {
	source   sources.Source
	content  *ContentLoader
	playback *Playback
	host     bridge.Host

	mu         sync.Mutex
	catalog    *data.Catalog
	nav        *Navigator
	current    int
	generation uint64
	view       *ChapterView

	events chan Event
}

func NewReader(source sources.Source, content *ContentLoader, playback *Playback, host bridge.Host) *Reader {
	if host == nil {
		host = bridge.Log{}
	}
	return &Reader{
		source:   source,
		content:  content,
		playback: playback,
		host:     host,
		catalog:  data.NewCatalog(nil),
		nav:      NewNavigator(0),
		events:   make(chan Event, eventBuffer),
	}
}

// Events returns the channel the reader publishes domain events on.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Start loads the catalog and the first chapter.
func (r *Reader) Start(ctx context.Context) (*ChapterView, error) {
	r.SetCatalog(LoadCatalog(ctx, r.source))
	view, err := r.LoadChapter(ctx, 0)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, errors.New("catalog is empty")
	}
	return view, nil
}

func (r *Reader) SetCatalog(catalog *data.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = catalog
	r.nav.Resize(catalog.Len())
	if r.current >= catalog.Len() {
		r.current = 0
	}
}

func (r *Reader) Catalog() *data.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog
}

// LoadChapter makes index the current chapter and binds its audio. An index
// outside the catalog is a no-op that returns nil, nil. When the text cannot be
// fetched the returned view is degraded but audio is still bound.
func (r *Reader) LoadChapter(ctx context.Context, index int) (*ChapterView, error) {
	r.mu.Lock()
	chapter, ok := r.catalog.At(index)
	if !ok {
		r.mu.Unlock()
		return nil, nil
	}
	r.current = index
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	r.emit(Event{Type: ChapterSelected, Index: index, Chapter: chapter})

	content, cached, err := r.content.Load(ctx, chapter)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		log.Debug().Int("chapter", chapter.Number).Msg("discarding superseded load")
		return nil, ErrSuperseded
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	view := &ChapterView{Index: index, Chapter: chapter}
	if err != nil {
		log.Warn().Err(err).Int("chapter", chapter.Number).Msg("failed to load surah text")
		view.Text = DegradedText(chapter)
		view.AudioURL = r.content.AudioURL(chapter.Number)
		view.Degraded = true
		r.emit(Event{Type: LoadFailed, Index: index, Chapter: chapter, Err: err})
	} else {
		view.Text = content.FullText
		view.AudioURL = content.AudioURL
		view.Cached = cached
	}

	if err := r.playback.Bind(view.AudioURL, chapter); err != nil {
		log.Error().Err(err).Int("chapter", chapter.Number).Msg("failed to bind audio")
	} else {
		r.host.Notify(bridge.ChapterLoaded(chapter))
	}

	r.nav.SetActive(index)
	r.view = view
	r.emit(Event{Type: ChapterLoaded, Index: index, Chapter: chapter, View: view})
	return view, nil
}

// Next loads the following chapter. It is a no-op on the last chapter.
func (r *Reader) Next(ctx context.Context) (*ChapterView, error) {
	r.mu.Lock()
	target, ok := r.nav.Next(r.current)
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.LoadChapter(ctx, target)
}

// Previous loads the preceding chapter. It is a no-op on the first chapter.
func (r *Reader) Previous(ctx context.Context) (*ChapterView, error) {
	r.mu.Lock()
	target, ok := r.nav.Previous(r.current)
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.LoadChapter(ctx, target)
}

// ObserveMediaEvent applies a media event to the playback state. It must be
// called in the order the media reported the events. When the current
// recitation ended and a following chapter exists, it returns that chapter's
// index for the caller to load.
func (r *Reader) ObserveMediaEvent(ev audio.Event) (int, bool) {
	if r.playback.Observe(ev) {
		r.emit(Event{Type: PlaybackStateChanged, Playing: r.playback.IsPlaying()})
	}

	switch ev.Type {
	case audio.Failed, audio.Rejected:
		_, chapter := r.playback.Source()
		r.emit(Event{Type: LoadFailed, Index: -1, Chapter: chapter, Err: ev.Err})
	case audio.Ended:
		url, _ := r.playback.Source()
		if ev.URL != "" && ev.URL != url {
			return 0, false
		}
		r.mu.Lock()
		target, ok := r.nav.Next(r.current)
		r.mu.Unlock()
		if !ok {
			log.Info().Msg("reached the last surah")
			return 0, false
		}
		return target, true
	}
	return 0, false
}

// HandleMediaEvent observes a media event and loads the next chapter when the
// current recitation ends.
func (r *Reader) HandleMediaEvent(ctx context.Context, ev audio.Event) (*ChapterView, error) {
	target, advance := r.ObserveMediaEvent(ev)
	if !advance {
		return nil, nil
	}
	return r.LoadChapter(ctx, target)
}

func (r *Reader) TogglePlayPause() error {
	return r.playback.TogglePlayPause()
}

func (r *Reader) Seek(fraction float64) error {
	return r.playback.Seek(fraction)
}

func (r *Reader) SetVolume(percent int) VolumeLevel {
	return r.playback.SetVolume(percent)
}

func (r *Reader) Playback() *Playback {
	return r.playback
}

// Current returns the 0-based index of the current chapter.
func (r *Reader) Current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Active returns the highlighted index, or -1 before the first load.
func (r *Reader) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nav.Active()
}

func (r *Reader) IsActive(index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nav.IsActive(index)
}

// View returns the last chapter view handed to the renderer.
func (r *Reader) View() *ChapterView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// Close stops playback. The event channel is left open for late readers.
func (r *Reader) Close() error {
	return r.playback.Close()
}

// emit sends a non-blocking event; updates are dropped when nobody listens.
func (r *Reader) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}
