package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/sources"
	"github.com/rs/zerolog/log"
)

// ContentCache stores fetched chapter content.
type ContentCache interface {
	Get(number int) (*data.ChapterContent, error)
	Put(content *data.ChapterContent) error
}

// ContentLoader resolves chapter content from the cache, or from the source on a miss.
type ContentLoader struct {
	source   sources.Source
	cache    ContentCache
	audioURL func(chapterNumber int) string
	now      func() time.Time
}

func NewContentLoader(source sources.Source, cache ContentCache, audioURL func(int) string) *ContentLoader {
	return &ContentLoader{source: source, cache: cache, audioURL: audioURL, now: time.Now}
}

// Load reports whether the content came from the cache.
func (l *ContentLoader) Load(ctx context.Context, chapter data.Chapter) (*data.ChapterContent, bool, error) {
	cached, err := l.cache.Get(chapter.Number)
	if err != nil {
		log.Warn().Err(err).Int("chapter", chapter.Number).Msg("cache lookup failed")
	}
	if cached != nil {
		return cached, true, nil
	}

	verses, err := l.source.GetVerses(ctx, chapter.Number)
	if err != nil {
		return nil, false, err
	}

	content := &data.ChapterContent{
		ChapterNumber: chapter.Number,
		FullText:      sources.FormatVerses(verses),
		AudioURL:      l.AudioURL(chapter.Number),
		FetchedAt:     l.now(),
	}
	if err := l.cache.Put(content); err != nil {
		log.Warn().Err(err).Int("chapter", chapter.Number).Msg("failed to cache chapter")
	}
	return content, false, nil
}

// AudioURL does not touch the network, so it works even when the text fetch fails.
func (l *ContentLoader) AudioURL(chapterNumber int) string {
	return l.audioURL(chapterNumber)
}

// DegradedText is shown in place of the verses when they could not be fetched.
func DegradedText(chapter data.Chapter) string {
	return fmt.Sprintf("Surah %s - %d ayahs.\n\nFull text loading failed. Please check your internet connection.",
		chapter.EnglishName, chapter.AyahCount)
}
