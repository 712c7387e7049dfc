package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/qari/pkg/app/components"
	"github.com/kerbaras/qari/pkg/app/styles"
	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/services"
)

// rows taken by everything but the text pane, root tabs and status included
const playerChrome = 14

// PlayerScreen shows the current surah's text and the playback controls.
type PlayerScreen struct {
	playback *services.Playback
	viewport viewport.Model
	spinner  spinner.Model
	seekbar  *components.Seekbar
	help     help.Model

	chapter data.Chapter
	view    *services.ChapterView
	loading bool

	// row of the seekbar in the last render, for mouse seeking
	seekbarRow int

	width  int
	height int
}

func NewPlayerScreen(playback *services.Playback) *PlayerScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusLoading

	vp := viewport.New(76, 10)
	vp.MouseWheelEnabled = true

	return &PlayerScreen{
		playback: playback,
		viewport: vp,
		spinner:  sp,
		seekbar:  components.NewSeekbar(76),
		help:     help.New(),
		loading:  true,
	}
}

func (s *PlayerScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// SetLoading shows the spinner for a chapter whose content is on its way.
func (s *PlayerScreen) SetLoading(chapter data.Chapter) tea.Cmd {
	s.chapter = chapter
	s.loading = true
	return s.spinner.Tick
}

func (s *PlayerScreen) SetView(view *services.ChapterView) {
	if view == nil {
		return
	}
	s.view = view
	s.chapter = view.Chapter
	s.loading = false
	s.renderText()
	s.viewport.GotoTop()
}

func (s *PlayerScreen) renderText() {
	if s.view == nil {
		return
	}
	style := styles.ArabicStyle
	if s.view.Degraded {
		style = styles.StatusWarning
	}
	s.viewport.SetContent(style.Width(s.viewport.Width).Render(s.view.Text))
}

// SeekFraction maps a click at (x, y) in screen coordinates to a track fraction.
func (s *PlayerScreen) SeekFraction(x, y int) (float64, bool) {
	if y != s.seekbarRow {
		return 0, false
	}
	return s.seekbar.FractionAt(x)
}

func (s *PlayerScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.viewport.Width = msg.Width - 6
		s.viewport.Height = max(msg.Height-playerChrome, 3)
		s.seekbar.Width = msg.Width
		s.help.Width = msg.Width
		s.renderText()
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *PlayerScreen) View() string {
	ch := s.chapter

	title := styles.TitleStyle.Render(fmt.Sprintf("%d. %s", ch.Number, ch.Title()))
	if ch.Number == 0 {
		title = styles.TitleStyle.Render("Qari")
	}
	subtitle := styles.SubtitleStyle.Render(fmt.Sprintf("%s · %s · %d ayahs", ch.Name, ch.RevelationType, ch.AyahCount))

	var body string
	switch {
	case s.loading:
		body = fmt.Sprintf("%s Loading surah...", s.spinner.View())
	default:
		body = s.viewport.View()
	}
	card := styles.CardStyle.Width(s.viewport.Width + 4).Render(body)

	above := lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", card, s.statusLine())
	s.seekbarRow = lipgloss.Height(above)

	position, duration := s.playback.Progress()
	bar := s.seekbar.View(position, duration)

	helpView := styles.HelpStyle.Render(s.help.View(playerKeys{keys}))
	return lipgloss.JoinVertical(lipgloss.Left, above, bar, "", helpView)
}

func (s *PlayerScreen) statusLine() string {
	state := s.playback.State().String()
	icon := "⏸"
	if s.playback.IsPlaying() {
		icon = "▶"
		state = "playing"
	}

	volume := s.playback.Volume()
	level := services.VolumeLevelFor(volume)

	parts := []string{
		styles.StateStyle(state).Render(fmt.Sprintf("%s %s", icon, state)),
		styles.MutedStyle.Render(fmt.Sprintf("%s %d%%", level.Icon(), volume)),
	}
	if s.view != nil && s.view.Cached {
		parts = append(parts, styles.MutedStyle.Render("cached"))
	}
	if s.view != nil && s.view.Degraded {
		parts = append(parts, styles.StatusWarning.Render("text unavailable"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWith(parts, "   ")...)
}

func joinWith(parts []string, sep string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
