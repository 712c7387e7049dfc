package services

import (
	"context"

	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/sources"
	"github.com/rs/zerolog/log"
)

// LoadCatalog fetches the chapter list and falls back to the built-in catalog
// on any failure. It never fails.
func LoadCatalog(ctx context.Context, source sources.Source) *data.Catalog {
	chapters, err := source.GetChapters(ctx)
	if err != nil || len(chapters) == 0 {
		log.Warn().Err(err).Msg("failed to load surah list, using built-in catalog")
		return data.FallbackCatalog()
	}

	log.Info().Int("count", len(chapters)).Msg("loaded surahs")
	return data.NewCatalog(chapters)
}
