package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/qari/pkg/app/styles"
	"github.com/kerbaras/qari/pkg/data"
)

// ChapterListItem is a catalog entry and its position in the full catalog.
type ChapterListItem struct {
	Index   int
	Chapter data.Chapter
}

// ChapterList renders a scrolling window over the chapters. The cursor and the
// active (loaded) chapter are tracked separately.
type ChapterList struct {
	Items         []ChapterListItem
	SelectedIndex int
	Active        int
	Width         int
	Height        int
	offset        int
}

func NewChapterList() *ChapterList {
	return &ChapterList{
		Items:  []ChapterListItem{},
		Active: -1,
		Width:  80,
		Height: 20,
	}
}

// ItemsFor builds list items for the given catalog indexes.
func ItemsFor(catalog *data.Catalog, indexes []int) []ChapterListItem {
	items := make([]ChapterListItem, 0, len(indexes))
	for _, i := range indexes {
		if ch, ok := catalog.At(i); ok {
			items = append(items, ChapterListItem{Index: i, Chapter: ch})
		}
	}
	return items
}

func (m *ChapterList) SetItems(items []ChapterListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
	m.scroll()
}

func (m *ChapterList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
	m.scroll()
}

func (m *ChapterList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
	m.scroll()
}

// SetActive marks the loaded chapter and moves the cursor onto it when visible in the list.
func (m *ChapterList) SetActive(index int) {
	m.Active = index
	for i, item := range m.Items {
		if item.Index == index {
			m.SelectedIndex = i
			m.scroll()
			return
		}
	}
}

func (m *ChapterList) Selected() *ChapterListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

func (m *ChapterList) visibleRows() int {
	if m.Height < 1 {
		return 1
	}
	return m.Height
}

// scroll keeps the cursor inside the visible window.
func (m *ChapterList) scroll() {
	rows := m.visibleRows()
	if m.SelectedIndex < m.offset {
		m.offset = m.SelectedIndex
	}
	if m.SelectedIndex >= m.offset+rows {
		m.offset = m.SelectedIndex - rows + 1
	}
	if last := len(m.Items) - rows; m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *ChapterList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No surahs match")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	m.scroll()
	end := m.offset + m.visibleRows()
	if end > len(m.Items) {
		end = len(m.Items)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		item := m.Items[i]
		row := m.renderRow(item)

		switch {
		case i == m.SelectedIndex:
			row = styles.SelectedStyle.Render(row)
		case item.Index == m.Active:
			row = styles.ActiveStyle.Render(row)
		default:
			row = styles.TextStyle.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *ChapterList) renderRow(item ChapterListItem) string {
	marker := "  "
	if item.Index == m.Active {
		marker = "▶ "
	}
	ch := item.Chapter
	row := fmt.Sprintf("%s%3d. %-20s %-28s %4d ayahs  %s",
		marker, ch.Number, ch.EnglishName, ch.EnglishTranslation, ch.AyahCount, ch.Name)
	if m.Width > 0 && lipgloss.Width(row) > m.Width {
		row = truncate(row, m.Width)
	}
	return row
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-1 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}
