package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/qari/pkg/data"
)

const sectionCSS = `body { direction: rtl; text-align: right; line-height: 2; }
h1 { direction: ltr; text-align: center; }
p.meta { direction: ltr; text-align: center; font-style: italic; }
p.ayahs { font-size: 1.4em; }
`

// Section is one chapter's text ready to be bound into a book.
type Section struct {
	Chapter data.Chapter
	Text    string
}

// EPubBuilder collects chapter sections and writes them as a single EPUB.
type EPubBuilder struct {
	outputDir string
	sections  []Section
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	if outputDir == "" {
		outputDir, _ = os.MkdirTemp("", "qari-epub-*")
	}
	return &EPubBuilder{outputDir: outputDir}
}

// Add queues a chapter. Sections are written in chapter order regardless of insertion order.
func (b *EPubBuilder) Add(chapter data.Chapter, text string) {
	b.sections = append(b.sections, Section{Chapter: chapter, Text: text})
}

func (b *EPubBuilder) Len() int {
	return len(b.sections)
}

// CreateEPub writes the queued sections to {outputDir}/{title}.epub and returns the path.
func (b *EPubBuilder) CreateEPub(title string) (string, error) {
	if len(b.sections) == 0 {
		return "", fmt.Errorf("no chapters to compile")
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	sorted := make([]Section, len(b.sections))
	copy(sorted, b.sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Chapter.Number < sorted[j].Chapter.Number
	})

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("alquran.cloud")
	e.SetLang("ar")
	e.SetPpd("rtl")
	e.SetDescription(fmt.Sprintf("%d surahs", len(sorted)))

	css, err := b.writeCSS()
	if err != nil {
		return "", err
	}
	defer os.Remove(css)

	cssPath, err := e.AddCSS(css, "quran.css")
	if err != nil {
		return "", fmt.Errorf("failed to add stylesheet: %w", err)
	}

	for _, section := range sorted {
		if _, err := e.AddSection(sectionBody(section), section.Chapter.Title(), "", cssPath); err != nil {
			return "", fmt.Errorf("failed to add surah %d: %w", section.Chapter.Number, err)
		}
	}

	outputPath := filepath.Join(b.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}

	return outputPath, nil
}

func (b *EPubBuilder) writeCSS() (string, error) {
	f, err := os.CreateTemp("", "qari-*.css")
	if err != nil {
		return "", fmt.Errorf("failed to create stylesheet: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(sectionCSS); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return f.Name(), nil
}

func sectionBody(section Section) string {
	ch := section.Chapter

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(ch.Title())))
	body.WriteString(fmt.Sprintf(`<p class="meta">%s · %s · %d ayahs</p>`+"\n",
		html.EscapeString(ch.EnglishTranslation), ch.RevelationType, ch.AyahCount))
	body.WriteString(fmt.Sprintf(`<p class="ayahs" lang="ar" dir="rtl">%s</p>`+"\n",
		html.EscapeString(strings.TrimSpace(section.Text))))
	return body.String()
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		result = "quran"
	}
	return result
}
