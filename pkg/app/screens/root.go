package screens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/qari/pkg/app/styles"
	"github.com/kerbaras/qari/pkg/audio"
	"github.com/kerbaras/qari/pkg/services"
	"github.com/rs/zerolog/log"
)

type screenType int

const (
	playerView screenType = iota
	chaptersView
)

const (
	volumeStep    = 10
	statusTimeout = 4 * time.Second
	blockedStatus = "Playback was blocked. Press space to try again."
)

type RootScreen struct {
	ctx    context.Context
	reader *services.Reader

	currentView screenType
	player      *PlayerScreen
	chapters    *ChaptersScreen

	initErr  error
	status   string
	statusID int

	width  int
	height int
}

func NewRootScreen(ctx context.Context, reader *services.Reader) *RootScreen {
	return &RootScreen{
		ctx:         ctx,
		reader:      reader,
		currentView: playerView,
		player:      NewPlayerScreen(reader.Playback()),
		chapters:    NewChaptersScreen(),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(
		r.player.Init(),
		startReader(r.ctx, r.reader),
		waitForReaderEvent(r.reader.Events()),
		waitForMediaEvent(r.reader.Playback().Events()),
		tick(),
	)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.player.Update(msg)
		r.chapters.Update(msg)
		return r, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
		if r.currentView == chaptersView && r.chapters.Filtering() {
			break
		}
		if r.initErr != nil {
			if key.Matches(msg, keys.Quit) {
				return r, tea.Quit
			}
			return r, nil
		}
		if cmd, handled := r.handleKey(msg); handled {
			return r, cmd
		}

	case tea.MouseMsg:
		if r.currentView == playerView && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if fraction, ok := r.player.SeekFraction(msg.X, msg.Y-r.headerHeight()); ok {
				if err := r.reader.Seek(fraction); err != nil {
					return r, r.setStatus(fmt.Sprintf("Seek failed: %s", err))
				}
				return r, nil
			}
		}

	case startedMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("failed to start reader")
			r.initErr = msg.err
			return r, nil
		}
		r.chapters.SetCatalog(r.reader.Catalog())
		r.player.SetView(msg.view)
		r.chapters.SetActive(msg.view.Index)
		return r, nil

	case chapterLoadedMsg:
		if msg.err != nil && !errors.Is(msg.err, services.ErrSuperseded) && !errors.Is(msg.err, context.Canceled) {
			log.Error().Err(msg.err).Msg("failed to load surah")
			return r, r.setStatus(fmt.Sprintf("Error: %s", msg.err))
		}
		if msg.view != nil {
			r.player.SetView(msg.view)
			r.chapters.SetActive(msg.view.Index)
		}
		return r, nil

	case readerEventMsg:
		return r, tea.Batch(r.handleReaderEvent(msg.event), waitForReaderEvent(r.reader.Events()))

	case mediaEventMsg:
		// observed here, in arrival order; only the auto-advance load runs in the background
		cmds := []tea.Cmd{waitForMediaEvent(r.reader.Playback().Events())}
		if target, ok := r.reader.ObserveMediaEvent(msg.event); ok {
			cmds = append(cmds, loadChapter(r.ctx, r.reader, target))
		}
		return r, tea.Batch(cmds...)

	case selectChapterMsg:
		r.currentView = playerView
		return r, loadChapter(r.ctx, r.reader, msg.Index)

	case clearStatusMsg:
		if msg.id == r.statusID {
			r.status = ""
		}
		return r, nil

	case tickMsg:
		return r, tick()
	}

	// Forward message to active screen
	switch r.currentView {
	case playerView:
		_, cmd = r.player.Update(msg)
	case chaptersView:
		_, cmd = r.chapters.Update(msg)
	}
	return r, cmd
}

// handleKey runs the bindings shared by both views.
func (r *RootScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, keys.Tab):
		if r.currentView == playerView {
			r.currentView = chaptersView
		} else {
			r.currentView = playerView
		}
		return nil, true
	case key.Matches(msg, keys.PlayPause):
		if err := r.reader.TogglePlayPause(); err != nil {
			log.Warn().Err(err).Msg("play request rejected")
			return r.setStatus(blockedStatus), true
		}
		return nil, true
	case key.Matches(msg, keys.Previous):
		return previousChapter(r.ctx, r.reader), true
	case key.Matches(msg, keys.Next):
		return nextChapter(r.ctx, r.reader), true
	case key.Matches(msg, keys.VolumeUp):
		r.reader.SetVolume(r.reader.Playback().Volume() + volumeStep)
		return nil, true
	case key.Matches(msg, keys.VolumeDn):
		r.reader.SetVolume(r.reader.Playback().Volume() - volumeStep)
		return nil, true
	case key.Matches(msg, keys.Seek) && r.currentView == playerView:
		digit := int(msg.Runes[0] - '0')
		if err := r.reader.Seek(float64(digit) / 10); err != nil {
			return r.setStatus(fmt.Sprintf("Seek failed: %s", err)), true
		}
		return nil, true
	}
	return nil, false
}

func (r *RootScreen) handleReaderEvent(ev services.Event) tea.Cmd {
	switch ev.Type {
	case services.ChapterSelected:
		return r.player.SetLoading(ev.Chapter)
	case services.ChapterLoaded:
		r.player.SetView(ev.View)
		r.chapters.SetActive(ev.Index)
	case services.LoadFailed:
		if ev.Err != nil {
			log.Warn().Err(ev.Err).Int("chapter", ev.Chapter.Number).Msg("load failed")
		}
		if errors.Is(ev.Err, audio.ErrPlaybackRejected) {
			return r.setStatus(blockedStatus)
		}
		if ev.Index < 0 {
			return r.setStatus(fmt.Sprintf("Audio unavailable for %s.", ev.Chapter.EnglishName))
		}
		return r.setStatus(fmt.Sprintf("Could not load the text of %s. Audio is still available.", ev.Chapter.EnglishName))
	}
	return nil
}

// setStatus shows a transient message under the tabs.
func (r *RootScreen) setStatus(text string) tea.Cmd {
	r.statusID++
	r.status = text
	return clearStatusAfter(r.statusID, statusTimeout)
}

func (r *RootScreen) headerHeight() int {
	return lipgloss.Height(r.renderHeader()) + 1
}

func (r *RootScreen) View() string {
	if r.initErr != nil {
		msg := styles.StatusError.Render("Error loading Quran. Please restart.")
		detail := styles.MutedStyle.Render(r.initErr.Error())
		body := lipgloss.JoinVertical(lipgloss.Center, msg, "", detail, "", styles.HelpStyle.Render("q: quit"))
		if r.width == 0 {
			return body
		}
		return lipgloss.Place(r.width, r.height, lipgloss.Center, lipgloss.Center, body)
	}

	var content string
	switch r.currentView {
	case playerView:
		content = r.player.View()
	case chaptersView:
		content = r.chapters.View()
	}

	return fmt.Sprintf("%s\n\n%s", r.renderHeader(), content)
}

func (r *RootScreen) renderHeader() string {
	playerTab := "Player"
	chaptersTab := "Surahs"

	if r.currentView == playerView {
		playerTab = styles.ActiveTabStyle.Render(playerTab)
		chaptersTab = styles.InactiveTabStyle.Render(chaptersTab)
	} else {
		playerTab = styles.InactiveTabStyle.Render(playerTab)
		chaptersTab = styles.ActiveTabStyle.Render(chaptersTab)
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Top, playerTab, chaptersTab)
	if r.status != "" {
		tabs = lipgloss.JoinHorizontal(lipgloss.Top, tabs, "  ", styles.StatusWarning.Render(r.status))
	}
	return tabs
}
