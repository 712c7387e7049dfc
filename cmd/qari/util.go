package cmd

import (
	"context"
	"fmt"

	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/services"
	"github.com/kerbaras/qari/pkg/sources"
	"github.com/spf13/cobra"
)

func truncateString(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

func newSource() sources.Source {
	return sources.NewAlQuran(cfg.APIBase, cfg.ReciterID, cfg.Timeout)
}

// loadCatalog never fails: an unreachable API yields the built-in list.
func loadCatalog(ctx context.Context) *data.Catalog {
	catalog := services.LoadCatalog(ctx, newSource())
	if catalog.IsFallback() {
		fmt.Println("⚠️  Could not reach the API, showing the offline list.")
	}
	return catalog
}

func chapterByNumber(catalog *data.Catalog, number int) (data.Chapter, error) {
	chapter, ok := catalog.At(catalog.IndexOf(number))
	if !ok {
		return data.Chapter{}, fmt.Errorf("surah %d is not in the catalog", number)
	}
	return chapter, nil
}

// newController opens the cache for subcommands. They never play audio.
func newController() *services.Controller {
	c := *cfg
	c.NoAudio = true
	controller, err := services.NewController(&c)
	cobra.CheckErr(err)
	return controller
}
