package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/integrations"
	"github.com/rs/zerolog/log"
)

// ExportProgress reports the state of one chapter during an export.
type ExportProgress struct {
	ChapterNumber int
	Completed     int
	Total         int
	Status        string // "fetching", "complete", "error", "writing"
	Error         error
}

// Exporter fetches chapter texts and binds them into a book.
type Exporter struct {
	loader       *ContentLoader
	rateLimiter  *time.Ticker
	progressChan chan ExportProgress
	concurrency  int
}

// NewExporter spaces network fetches by interval. Cache hits are not throttled.
func NewExporter(loader *ContentLoader, interval time.Duration) *Exporter {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Exporter{
		loader:       loader,
		rateLimiter:  time.NewTicker(interval),
		progressChan: make(chan ExportProgress, 128),
		concurrency:  3,
	}
}

func (e *Exporter) GetProgressChannel() <-chan ExportProgress {
	return e.progressChan
}

// Export adds every chapter it can fetch to builder and writes the book.
// Chapters that fail are reported on the progress channel and skipped.
func (e *Exporter) Export(ctx context.Context, chapters []data.Chapter, builder integrations.Builder, title string) (string, error) {
	if len(chapters) == 0 {
		return "", fmt.Errorf("no chapters to export")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
		failed    []error
	)
	semaphore := make(chan struct{}, e.concurrency)

	for _, chapter := range chapters {
		wg.Add(1)
		go func(chapter data.Chapter) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			text, err := e.fetch(ctx, chapter, len(chapters))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, fmt.Errorf("surah %d: %w", chapter.Number, err))
				e.sendProgress(ExportProgress{ChapterNumber: chapter.Number, Completed: completed, Total: len(chapters), Status: "error", Error: err})
				return
			}
			builder.Add(chapter, text)
			completed++
			e.sendProgress(ExportProgress{ChapterNumber: chapter.Number, Completed: completed, Total: len(chapters), Status: "complete"})
		}(chapter)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if builder.Len() == 0 {
		return "", fmt.Errorf("failed to fetch any surah: %w", errors.Join(failed...))
	}
	if len(failed) > 0 {
		log.Warn().Int("failed", len(failed)).Int("total", len(chapters)).Msg("exporting without some surahs")
	}

	e.sendProgress(ExportProgress{Completed: completed, Total: len(chapters), Status: "writing"})
	path, err := builder.CreateEPub(title)
	if err != nil {
		return "", fmt.Errorf("failed to write book: %w", err)
	}
	return path, nil
}

func (e *Exporter) fetch(ctx context.Context, chapter data.Chapter, total int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.sendProgress(ExportProgress{ChapterNumber: chapter.Number, Total: total, Status: "fetching"})

	content, cached, err := e.loader.Load(ctx, chapter)
	if !cached {
		select {
		case <-e.rateLimiter.C:
		case <-ctx.Done():
		}
	}
	if err != nil {
		return "", err
	}
	return content.FullText, nil
}

// sendProgress sends a progress update (non-blocking)
func (e *Exporter) sendProgress(progress ExportProgress) {
	select {
	case e.progressChan <- progress:
	default:
	}
}

// Close stops the rate limiter and closes the progress channel.
func (e *Exporter) Close() {
	e.rateLimiter.Stop()
	close(e.progressChan)
}
