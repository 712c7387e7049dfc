package screens

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/qari/pkg/audio"
	"github.com/kerbaras/qari/pkg/services"
)

// Messages
type startedMsg struct {
	view *services.ChapterView
	err  error
}

type chapterLoadedMsg struct {
	view *services.ChapterView
	err  error
}

// selectChapterMsg asks the root to load a catalog index.
type selectChapterMsg struct {
	Index int
}

type readerEventMsg struct {
	event services.Event
}

type mediaEventMsg struct {
	event audio.Event
}

type tickMsg time.Time

type clearStatusMsg struct {
	id int
}

// Commands
func waitForReaderEvent(events <-chan services.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return readerEventMsg{event: ev}
	}
}

func waitForMediaEvent(events <-chan audio.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return mediaEventMsg{event: ev}
	}
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearStatusAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func startReader(ctx context.Context, reader *services.Reader) tea.Cmd {
	return func() tea.Msg {
		view, err := reader.Start(ctx)
		return startedMsg{view: view, err: err}
	}
}

func loadChapter(ctx context.Context, reader *services.Reader, index int) tea.Cmd {
	return func() tea.Msg {
		view, err := reader.LoadChapter(ctx, index)
		return chapterLoadedMsg{view: view, err: err}
	}
}

func nextChapter(ctx context.Context, reader *services.Reader) tea.Cmd {
	return func() tea.Msg {
		view, err := reader.Next(ctx)
		return chapterLoadedMsg{view: view, err: err}
	}
}

func previousChapter(ctx context.Context, reader *services.Reader) tea.Cmd {
	return func() tea.Msg {
		view, err := reader.Previous(ctx)
		return chapterLoadedMsg{view: view, err: err}
	}
}
