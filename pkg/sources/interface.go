package sources

import (
	"context"

	"github.com/kerbaras/qari/pkg/data"
)

// Source is a remote provider of the chapter catalog and chapter text.
type Source interface {
	GetChapters(ctx context.Context) ([]data.Chapter, error)
	GetVerses(ctx context.Context, chapterNumber int) ([]string, error)
}
