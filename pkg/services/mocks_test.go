package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kerbaras/qari/pkg/audio"
	"github.com/kerbaras/qari/pkg/data"
)

// Mock implementations for testing

type mockSource struct {
	mu              sync.Mutex
	getChaptersFunc func(ctx context.Context) ([]data.Chapter, error)
	getVersesFunc   func(ctx context.Context, chapterNumber int) ([]string, error)
	verseCalls      map[int]int
}

func (m *mockSource) GetChapters(ctx context.Context) ([]data.Chapter, error) {
	if m.getChaptersFunc != nil {
		return m.getChaptersFunc(ctx)
	}
	return testChapters, nil
}

func (m *mockSource) GetVerses(ctx context.Context, chapterNumber int) ([]string, error) {
	m.mu.Lock()
	if m.verseCalls == nil {
		m.verseCalls = make(map[int]int)
	}
	m.verseCalls[chapterNumber]++
	m.mu.Unlock()

	if m.getVersesFunc != nil {
		return m.getVersesFunc(ctx, chapterNumber)
	}
	return []string{fmt.Sprintf("verse of %d", chapterNumber)}, nil
}

func (m *mockSource) calls(chapterNumber int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verseCalls[chapterNumber]
}

type mockCache struct {
	mu      sync.Mutex
	getFunc func(number int) (*data.ChapterContent, error)
	putFunc func(content *data.ChapterContent) error
	entries map[int]*data.ChapterContent
}

func (m *mockCache) Get(number int) (*data.ChapterContent, error) {
	if m.getFunc != nil {
		return m.getFunc(number)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[number], nil
}

func (m *mockCache) Put(content *data.ChapterContent) error {
	if m.putFunc != nil {
		return m.putFunc(content)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[int]*data.ChapterContent)
	}
	m.entries[content.ChapterNumber] = content
	return nil
}

type mockMedia struct {
	mu       sync.Mutex
	loadFunc func(url string) error
	playFunc func() error
	url      string
	loaded   []string
	playing  bool
	plays    int
	pauses   int
	position time.Duration
	duration time.Duration
	volume   float64
	events   chan audio.Event
}

func newMockMedia() *mockMedia {
	return &mockMedia{events: make(chan audio.Event, 16)}
}

func (m *mockMedia) Load(url string) error {
	if m.loadFunc != nil {
		if err := m.loadFunc(url); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = url
	m.loaded = append(m.loaded, url)
	m.playing = false
	m.position = 0
	return nil
}

func (m *mockMedia) Play() error {
	m.mu.Lock()
	fn := m.playFunc
	m.mu.Unlock()
	if fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = true
	m.plays++
	return nil
}

func (m *mockMedia) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.pauses++
}

func (m *mockMedia) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.playing
}

func (m *mockMedia) Seek(position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
	return nil
}

func (m *mockMedia) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = level
}

func (m *mockMedia) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *mockMedia) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *mockMedia) Events() <-chan audio.Event { return m.events }

func (m *mockMedia) Close() error { return nil }

func (m *mockMedia) setPlayFunc(fn func() error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playFunc = fn
}

func (m *mockMedia) playCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

func (m *mockMedia) loadedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.loaded))
	copy(out, m.loaded)
	return out
}

type mockHost struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockHost) Notify(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

func (m *mockHost) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}

var testChapters = []data.Chapter{
	{Number: 1, Name: "الفاتحة", EnglishName: "Al-Fatihah", EnglishTranslation: "The Opening", AyahCount: 7, RevelationType: data.Meccan},
	{Number: 2, Name: "البقرة", EnglishName: "Al-Baqarah", EnglishTranslation: "The Cow", AyahCount: 286, RevelationType: data.Medinan},
	{Number: 3, Name: "آل عمران", EnglishName: "Ali 'Imran", EnglishTranslation: "Family of Imran", AyahCount: 200, RevelationType: data.Medinan},
}

func testAudioURL(n int) string {
	return fmt.Sprintf("https://cdn.test/quran/audio/128/ar.alafasy/%d.mp3", n)
}

type readerFixture struct {
	reader *Reader
	source *mockSource
	cache  *mockCache
	media  *mockMedia
	host   *mockHost
}

func newReaderFixture(source *mockSource) *readerFixture {
	if source == nil {
		source = &mockSource{}
	}
	f := &readerFixture{
		source: source,
		cache:  &mockCache{},
		media:  newMockMedia(),
		host:   &mockHost{},
	}
	content := NewContentLoader(source, f.cache, testAudioURL)
	playback := NewPlayback(f.media, 70, 0)
	f.reader = NewReader(source, content, playback, f.host)
	f.reader.SetCatalog(data.NewCatalog(testChapters))
	return f
}

// drain returns the event types currently buffered on the reader.
func drain(events <-chan Event) []EventType {
	var out []EventType
	for {
		select {
		case ev := <-events:
			out = append(out, ev.Type)
		default:
			return out
		}
	}
}
