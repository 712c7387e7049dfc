package data

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RevelationType tells where a chapter was revealed.
type RevelationType string

const (
	Meccan  RevelationType = "Meccan"
	Medinan RevelationType = "Medinan"
)

// ParseRevelationType accepts the API spelling as well as the older Makki/Madani forms.
func ParseRevelationType(s string) (RevelationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "meccan", "makki", "makkah", "mecca":
		return Meccan, nil
	case "medinan", "madani", "madinah", "medina":
		return Medinan, nil
	}
	return "", fmt.Errorf("unknown revelation type %q", s)
}

func (r *RevelationType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRevelationType(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Chapter is one surah of the catalog. It never changes after the catalog is loaded.
type Chapter struct {
	Number             int            `json:"number"`
	Name               string         `json:"name"`
	EnglishName        string         `json:"englishName"`
	EnglishTranslation string         `json:"englishNameTranslation"`
	AyahCount          int            `json:"numberOfAyahs"`
	RevelationType     RevelationType `json:"revelationType"`
}

// Title renders "Al-Fatihah (The Opening)".
func (c Chapter) Title() string {
	if c.EnglishTranslation == "" {
		return c.EnglishName
	}
	return fmt.Sprintf("%s (%s)", c.EnglishName, c.EnglishTranslation)
}

// ChapterContent is the cached text and audio location of a chapter.
type ChapterContent struct {
	ChapterNumber int
	FullText      string
	AudioURL      string
	FetchedAt     time.Time
}
