package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBase      = "https://api.alquran.cloud/v1"
	DefaultAudioCDNBase = "https://cdn.islamic.network"
	DefaultReciter      = "ar.alafasy"
	DefaultVolume       = 70
	DefaultTimeout      = 15 * time.Second
	DefaultResumeDelay  = 500 * time.Millisecond
)

// Config holds every tunable of the reader. The reciter doubles as the text edition.
type Config struct {
	APIBase      string
	AudioCDNBase string
	ReciterID    string

	Volume      int
	Timeout     time.Duration
	ResumeDelay time.Duration
	CacheMaxAge time.Duration
	NoAudio     bool

	LogFile string
	Debug   bool

	TelegramToken  string
	TelegramChatID string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBase:      DefaultAPIBase,
		AudioCDNBase: DefaultAudioCDNBase,
		ReciterID:    DefaultReciter,
		Volume:       DefaultVolume,
		Timeout:      DefaultTimeout,
		ResumeDelay:  DefaultResumeDelay,
		LogFile:      defaultLogFile(),
	}
}

// Load reads an optional .env file, then QARI_* environment variables on top of the defaults.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	cfg.APIBase = getEnv("QARI_API_BASE", cfg.APIBase)
	cfg.AudioCDNBase = getEnv("QARI_AUDIO_CDN_BASE", cfg.AudioCDNBase)
	cfg.ReciterID = getEnv("QARI_RECITER", cfg.ReciterID)
	cfg.LogFile = getEnv("QARI_LOG_FILE", cfg.LogFile)
	cfg.TelegramToken = getEnv("QARI_TELEGRAM_TOKEN", "")
	cfg.TelegramChatID = getEnv("QARI_TELEGRAM_CHAT_ID", "")

	var err error
	if cfg.Volume, err = getEnvInt("QARI_VOLUME", cfg.Volume); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = getEnvDuration("QARI_TIMEOUT", cfg.Timeout); err != nil {
		return nil, err
	}
	if cfg.ResumeDelay, err = getEnvDuration("QARI_RESUME_DELAY", cfg.ResumeDelay); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = getEnvDuration("QARI_CACHE_MAX_AGE", cfg.CacheMaxAge); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getEnvBool("QARI_DEBUG", cfg.Debug); err != nil {
		return nil, err
	}
	if cfg.NoAudio, err = getEnvBool("QARI_NO_AUDIO", cfg.NoAudio); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ReciterID) == "" {
		return fmt.Errorf("reciter cannot be empty")
	}
	if strings.TrimSpace(c.APIBase) == "" {
		return fmt.Errorf("api base cannot be empty")
	}
	if strings.TrimSpace(c.AudioCDNBase) == "" {
		return fmt.Errorf("audio cdn base cannot be empty")
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Volume)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ResumeDelay < 0 || c.CacheMaxAge < 0 {
		return fmt.Errorf("durations cannot be negative")
	}
	return nil
}

// TelegramEnabled reports whether load notifications should go to a Telegram chat.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

// AudioURL composes the stream location of a chapter recitation.
func (c *Config) AudioURL(chapterNumber int) string {
	return fmt.Sprintf("%s/quran/audio/128/%s/%d.mp3", strings.TrimRight(c.AudioCDNBase, "/"), c.ReciterID, chapterNumber)
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "qari", "qari.log")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
