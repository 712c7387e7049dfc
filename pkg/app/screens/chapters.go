package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/qari/pkg/app/components"
	"github.com/kerbaras/qari/pkg/app/styles"
	"github.com/kerbaras/qari/pkg/data"
)

// ChaptersScreen lists the catalog and lets the listener pick a surah.
type ChaptersScreen struct {
	catalog *data.Catalog
	list    *components.ChapterList
	filter  textinput.Model
	help    help.Model
	width   int
	height  int
}

func NewChaptersScreen() *ChaptersScreen {
	ti := textinput.New()
	ti.Placeholder = "Filter by name, meaning or number..."
	ti.CharLimit = 40
	ti.Width = 40

	return &ChaptersScreen{
		list:   components.NewChapterList(),
		filter: ti,
		help:   help.New(),
	}
}

func (s *ChaptersScreen) Init() tea.Cmd {
	return nil
}

// SetCatalog replaces the listed chapters, keeping the current filter.
func (s *ChaptersScreen) SetCatalog(catalog *data.Catalog) {
	s.catalog = catalog
	s.applyFilter()
}

func (s *ChaptersScreen) SetActive(index int) {
	s.list.SetActive(index)
}

// Filtering reports whether keystrokes belong to the filter input.
func (s *ChaptersScreen) Filtering() bool {
	return s.filter.Focused()
}

func (s *ChaptersScreen) applyFilter() {
	s.list.SetItems(components.ItemsFor(s.catalog, s.catalog.Search(s.filter.Value())))
}

func (s *ChaptersScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 2
		s.list.Height = max(msg.Height-10, 3)
		s.help.Width = msg.Width
		return s, nil

	case tea.KeyMsg:
		if s.filter.Focused() {
			switch {
			case key.Matches(msg, keys.Back):
				s.filter.SetValue("")
				s.filter.Blur()
				s.applyFilter()
				return s, nil
			case key.Matches(msg, keys.Select), msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
				s.filter.Blur()
			default:
				s.filter, cmd = s.filter.Update(msg)
				s.applyFilter()
				return s, cmd
			}
		}

		switch {
		case key.Matches(msg, keys.Up):
			s.list.Prev()
		case key.Matches(msg, keys.Down):
			s.list.Next()
		case key.Matches(msg, keys.Filter):
			return s, s.filter.Focus()
		case key.Matches(msg, keys.Back):
			s.filter.SetValue("")
			s.applyFilter()
		case key.Matches(msg, keys.Select):
			if selected := s.list.Selected(); selected != nil {
				index := selected.Index
				return s, func() tea.Msg { return selectChapterMsg{Index: index} }
			}
		}
	}

	return s, nil
}

func (s *ChaptersScreen) View() string {
	header := styles.TitleStyle.Render(fmt.Sprintf("📖 Surahs (%d)", s.catalog.Len()))
	if s.catalog.IsFallback() {
		header += "  " + styles.StatusWarning.Render("offline list")
	}

	inputStyle := styles.InputStyle
	if s.filter.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	input := inputStyle.Render(s.filter.View())

	helpView := styles.HelpStyle.Render(s.help.View(chapterKeys{keys}))
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, input, s.list.View(), helpView)
}
