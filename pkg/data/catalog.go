package data

import (
	"strconv"
	"strings"
)

// Catalog is the ordered chapter list. Index 0 is chapter 1.
type Catalog struct {
	chapters []Chapter
	fallback bool
}

func NewCatalog(chapters []Chapter) *Catalog {
	out := make([]Chapter, len(chapters))
	copy(out, chapters)
	return &Catalog{chapters: out}
}

// FallbackCatalog returns the built-in catalog used when the remote list is unavailable.
func FallbackCatalog() *Catalog {
	c := NewCatalog(fallbackChapters)
	c.fallback = true
	return c
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.chapters)
}

// At returns the chapter at a 0-based index.
func (c *Catalog) At(index int) (Chapter, bool) {
	if c == nil || index < 0 || index >= len(c.chapters) {
		return Chapter{}, false
	}
	return c.chapters[index], true
}

// IndexOf returns the index of a chapter number, or -1.
func (c *Catalog) IndexOf(number int) int {
	for i, ch := range c.Chapters() {
		if ch.Number == number {
			return i
		}
	}
	return -1
}

func (c *Catalog) Chapters() []Chapter {
	if c == nil {
		return nil
	}
	out := make([]Chapter, len(c.chapters))
	copy(out, c.chapters)
	return out
}

// IsFallback reports whether the catalog is the built-in degraded list.
func (c *Catalog) IsFallback() bool {
	return c != nil && c.fallback
}

var fallbackChapters = []Chapter{
	{Number: 1, Name: "الفاتحة", EnglishName: "Al-Fatihah", EnglishTranslation: "The Opening", AyahCount: 7, RevelationType: Meccan},
	{Number: 2, Name: "البقرة", EnglishName: "Al-Baqarah", EnglishTranslation: "The Cow", AyahCount: 286, RevelationType: Medinan},
	{Number: 3, Name: "آل عمران", EnglishName: "Ali 'Imran", EnglishTranslation: "Family of Imran", AyahCount: 200, RevelationType: Medinan},
	{Number: 4, Name: "النساء", EnglishName: "An-Nisa", EnglishTranslation: "The Women", AyahCount: 176, RevelationType: Medinan},
	{Number: 5, Name: "المائدة", EnglishName: "Al-Ma'idah", EnglishTranslation: "The Table Spread", AyahCount: 120, RevelationType: Medinan},
}

// Search returns the indexes of chapters whose number, English name, translation
// or native name contains query, case-insensitively. An empty query matches all.
func (c *Catalog) Search(query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []int
	for i, ch := range c.Chapters() {
		if query == "" || matches(ch, query) {
			out = append(out, i)
		}
	}
	return out
}

func matches(ch Chapter, query string) bool {
	if strconv.Itoa(ch.Number) == query {
		return true
	}
	for _, field := range []string{ch.EnglishName, ch.EnglishTranslation, ch.Name} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
