package services

import (
	"errors"
	"fmt"

	"github.com/kerbaras/qari/pkg/audio"
	"github.com/kerbaras/qari/pkg/bridge"
	"github.com/kerbaras/qari/pkg/config"
	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/sources"
)

// Controller owns the session's dependencies: source, cache, media and host.
type Controller struct {
	Reader  *Reader
	Source  sources.Source
	Content *ContentLoader
	cfg     *config.Config
	cache   *data.Cache
}

func NewController(cfg *config.Config) (*Controller, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	cache, err := data.NewCache(cfg.CacheMaxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	source := sources.NewAlQuran(cfg.APIBase, cfg.ReciterID, cfg.Timeout)
	content := NewContentLoader(source, cache, cfg.AudioURL)
	playback := NewPlayback(newMedia(cfg), cfg.Volume, cfg.ResumeDelay)

	return &Controller{
		Reader:  NewReader(source, content, playback, newHost(cfg)),
		Source:  source,
		Content: content,
		cfg:     cfg,
		cache:   cache,
	}, nil
}

func newMedia(cfg *config.Config) audio.Media {
	if cfg.NoAudio {
		return audio.NewSilent()
	}
	return audio.NewSpeaker()
}

func newHost(cfg *config.Config) bridge.Host {
	if cfg.TelegramEnabled() {
		return bridge.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, cfg.Timeout)
	}
	return bridge.Log{}
}

// NewExporter returns an exporter that shares the session cache.
func (c *Controller) NewExporter() *Exporter {
	return NewExporter(c.Content, 0)
}

func (c *Controller) Close() error {
	return errors.Join(c.Reader.Close(), c.cache.Close())
}
