package components

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kerbaras/qari/pkg/app/styles"
	"github.com/kerbaras/qari/pkg/services"
)

// Seekbar is the playback position bar. It maps clicks back to track fractions.
type Seekbar struct {
	Width int
}

func NewSeekbar(width int) *Seekbar {
	return &Seekbar{Width: width}
}

// labels are right-aligned in a fixed column so the bar never moves
const labelWidth = 6

// View renders "M:SS [bar] M:SS". An unknown duration renders an empty bar.
func (s *Seekbar) View(position, duration time.Duration) string {
	var bar string
	if duration > 0 {
		bar = renderProgressBar(int(position), int(duration), s.barWidth())
	} else {
		bar = styles.ProgressEmptyStyle.Render(strings.Repeat("░", s.barWidth()))
	}
	return fmt.Sprintf("%*s %s %-*s",
		labelWidth-1, services.FormatDuration(position), bar, labelWidth-1, services.FormatDuration(duration))
}

// FractionAt converts a column inside the rendered seekbar into a track fraction.
// It reports false when x falls outside the bar itself.
func (s *Seekbar) FractionAt(x int) (float64, bool) {
	width := s.barWidth()
	if x < labelWidth || x >= labelWidth+width {
		return 0, false
	}
	if width == 1 {
		return 0, true
	}
	return float64(x-labelWidth) / float64(width-1), true
}

func (s *Seekbar) barWidth() int {
	w := s.Width - 2*labelWidth
	if w < 1 {
		return 1
	}
	return w
}

// ProgressTracker follows an export, one line per chapter.
type ProgressTracker struct {
	chapters  map[int]*services.ExportProgress
	completed int
	total     int
	width     int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		chapters: make(map[int]*services.ExportProgress),
		width:    width,
	}
}

func (p *ProgressTracker) Update(progress services.ExportProgress) {
	if progress.Total > 0 {
		p.total = progress.Total
	}
	if progress.Completed > p.completed {
		p.completed = progress.Completed
	}
	if progress.ChapterNumber == 0 {
		return
	}
	if progress.Status == "complete" {
		delete(p.chapters, progress.ChapterNumber)
		return
	}
	prog := progress
	p.chapters[progress.ChapterNumber] = &prog
}

func (p *ProgressTracker) Clear() {
	p.chapters = make(map[int]*services.ExportProgress)
	p.completed = 0
	p.total = 0
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.chapters) > 0
}

func (p *ProgressTracker) View() string {
	if p.total == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Exporting"))
	b.WriteString("\n")
	b.WriteString(renderProgressBar(p.completed, p.total, p.width-12))
	b.WriteString(fmt.Sprintf(" %d/%d\n", p.completed, p.total))

	numbers := make([]int, 0, len(p.chapters))
	for n := range p.chapters {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		progress := p.chapters[n]
		line := fmt.Sprintf("Surah %d: %s", n, progress.Status)
		if progress.Error != nil {
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("%s (Error: %s)", line, progress.Error)))
		} else {
			b.WriteString(styles.MutedStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
