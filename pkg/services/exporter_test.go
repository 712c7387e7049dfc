package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/integrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBuilder struct {
	mu         sync.Mutex
	added      map[int]string
	createFunc func(title string) (string, error)
}

func (m *mockBuilder) Add(chapter data.Chapter, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.added == nil {
		m.added = make(map[int]string)
	}
	m.added[chapter.Number] = text
}

func (m *mockBuilder) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.added)
}

func (m *mockBuilder) CreateEPub(title string) (string, error) {
	if m.createFunc != nil {
		return m.createFunc(title)
	}
	return "/tmp/" + title + ".epub", nil
}

func newTestExporter(source *mockSource, cache *mockCache) *Exporter {
	return NewExporter(NewContentLoader(source, cache, testAudioURL), time.Millisecond)
}

func TestNewExporter(t *testing.T) {
	exporter := NewExporter(NewContentLoader(&mockSource{}, &mockCache{}, testAudioURL), 0)
	defer exporter.Close()

	assert.NotNil(t, exporter.rateLimiter)
	assert.NotNil(t, exporter.GetProgressChannel())
	assert.Equal(t, 3, exporter.concurrency)
}

func TestExportAllChapters(t *testing.T) {
	source := &mockSource{}
	exporter := newTestExporter(source, &mockCache{})
	defer exporter.Close()
	builder := &mockBuilder{}

	path, err := exporter.Export(context.Background(), testChapters, builder, "Quran")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/Quran.epub", path)
	assert.Equal(t, len(testChapters), builder.Len())
	assert.Equal(t, "verse of 3 (1) ", builder.added[3])
}

func TestExportUsesCache(t *testing.T) {
	source := &mockSource{}
	cache := &mockCache{}
	require.NoError(t, cache.Put(&data.ChapterContent{ChapterNumber: 1, FullText: "cached text", AudioURL: testAudioURL(1)}))

	exporter := newTestExporter(source, cache)
	defer exporter.Close()
	builder := &mockBuilder{}

	_, err := exporter.Export(context.Background(), testChapters[:2], builder, "Quran")
	require.NoError(t, err)
	assert.Equal(t, 0, source.calls(1))
	assert.Equal(t, 1, source.calls(2))
	assert.Equal(t, "cached text", builder.added[1])
}

func TestExportSkipsFailedChapters(t *testing.T) {
	source := &mockSource{
		getVersesFunc: func(ctx context.Context, n int) ([]string, error) {
			if n == 2 {
				return nil, errors.New("not found")
			}
			return []string{"ok"}, nil
		},
	}
	exporter := newTestExporter(source, &mockCache{})
	defer exporter.Close()
	builder := &mockBuilder{}

	_, err := exporter.Export(context.Background(), testChapters, builder, "Quran")
	require.NoError(t, err)
	assert.Equal(t, 2, builder.Len())
	assert.NotContains(t, builder.added, 2)

	var sawError bool
	for {
		select {
		case p := <-exporter.GetProgressChannel():
			if p.Status == "error" {
				sawError = true
				assert.Equal(t, 2, p.ChapterNumber)
			}
			continue
		default:
		}
		break
	}
	assert.True(t, sawError, "failed chapter should be reported")
}

func TestExportFailsWhenNothingFetched(t *testing.T) {
	source := &mockSource{
		getVersesFunc: func(ctx context.Context, n int) ([]string, error) {
			return nil, errors.New("offline")
		},
	}
	exporter := newTestExporter(source, &mockCache{})
	defer exporter.Close()

	_, err := exporter.Export(context.Background(), testChapters, &mockBuilder{}, "Quran")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
}

func TestExportNoChapters(t *testing.T) {
	exporter := newTestExporter(&mockSource{}, &mockCache{})
	defer exporter.Close()

	_, err := exporter.Export(context.Background(), nil, &mockBuilder{}, "Quran")
	assert.Error(t, err)
}

func TestExportCancelled(t *testing.T) {
	exporter := newTestExporter(&mockSource{}, &mockCache{})
	defer exporter.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exporter.Export(ctx, testChapters, &mockBuilder{}, "Quran")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportWritesEPub(t *testing.T) {
	exporter := newTestExporter(&mockSource{}, &mockCache{})
	defer exporter.Close()
	builder := integrations.NewEPubBuilder(t.TempDir())

	path, err := exporter.Export(context.Background(), testChapters[:2], builder, "Quran 1-2")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
