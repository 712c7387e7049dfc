package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kerbaras/qari/pkg/services"
)

func TestNewProgressTracker(t *testing.T) {
	tracker := NewProgressTracker(80)

	if tracker == nil {
		t.Fatal("Expected tracker to be created")
	}
	if tracker.width != 80 {
		t.Errorf("Expected width 80, got %d", tracker.width)
	}
	if len(tracker.chapters) != 0 {
		t.Errorf("Expected 0 chapters, got %d", len(tracker.chapters))
	}
}

func TestTrackerUpdate(t *testing.T) {
	tracker := NewProgressTracker(80)

	tracker.Update(services.ExportProgress{ChapterNumber: 2, Total: 5, Status: "fetching"})

	if !tracker.HasActive() {
		t.Error("Expected tracker to have active chapters")
	}
	if tracker.total != 5 {
		t.Errorf("Expected total 5, got %d", tracker.total)
	}
}

func TestTrackerRemovesCompleted(t *testing.T) {
	tracker := NewProgressTracker(80)

	tracker.Update(services.ExportProgress{ChapterNumber: 1, Total: 2, Status: "fetching"})
	tracker.Update(services.ExportProgress{ChapterNumber: 1, Completed: 1, Total: 2, Status: "complete"})

	if tracker.HasActive() {
		t.Errorf("Expected completed chapter to be removed, got %d", len(tracker.chapters))
	}
	if tracker.completed != 1 {
		t.Errorf("Expected 1 completed, got %d", tracker.completed)
	}
}

func TestTrackerClear(t *testing.T) {
	tracker := NewProgressTracker(80)
	for i := 1; i <= 3; i++ {
		tracker.Update(services.ExportProgress{ChapterNumber: i, Total: 3, Status: "fetching"})
	}

	if len(tracker.chapters) != 3 {
		t.Errorf("Expected 3 chapters, got %d", len(tracker.chapters))
	}

	tracker.Clear()

	if tracker.HasActive() || tracker.View() != "" {
		t.Error("Expected an empty tracker after clear")
	}
}

func TestTrackerViewEmpty(t *testing.T) {
	tracker := NewProgressTracker(80)

	if view := tracker.View(); view != "" {
		t.Errorf("Expected empty view, got: %s", view)
	}
}

func TestTrackerView(t *testing.T) {
	tracker := NewProgressTracker(80)
	tracker.Update(services.ExportProgress{ChapterNumber: 1, Completed: 1, Total: 4, Status: "complete"})
	tracker.Update(services.ExportProgress{ChapterNumber: 3, Total: 4, Status: "fetching"})
	tracker.Update(services.ExportProgress{ChapterNumber: 2, Total: 4, Status: "error", Error: errors.New("not found")})

	view := tracker.View()

	if !strings.Contains(view, "Exporting") {
		t.Error("Expected header")
	}
	if !strings.Contains(view, "1/4") {
		t.Error("Expected overall progress in view")
	}
	if !strings.Contains(view, "Surah 3: fetching") {
		t.Error("Expected chapter status in view")
	}
	if !strings.Contains(view, "Error: not found") {
		t.Error("Expected error details in view")
	}
	if strings.Index(view, "Surah 2") > strings.Index(view, "Surah 3") {
		t.Error("Expected chapters in order")
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := renderProgressBar(50, 100, 20)

	if strings.Count(bar, "█") != 10 {
		t.Errorf("Expected 10 filled chars, got %d", strings.Count(bar, "█"))
	}
	if strings.Count(bar, "░") != 10 {
		t.Errorf("Expected 10 empty chars, got %d", strings.Count(bar, "░"))
	}
}

func TestRenderProgressBarZeroTotal(t *testing.T) {
	if bar := renderProgressBar(0, 0, 20); bar != "" {
		t.Errorf("Expected empty string for zero total, got: %s", bar)
	}
}

func TestRenderProgressBarFull(t *testing.T) {
	bar := renderProgressBar(150, 100, 20)

	if strings.Count(bar, "█") != 20 {
		t.Errorf("Expected 20 filled chars, got %d", strings.Count(bar, "█"))
	}
}

func TestSimpleProgress(t *testing.T) {
	bar := SimpleProgress(25, 100, 40)

	filled := strings.Count(bar, "█")
	if filled < 8 || filled > 12 {
		t.Errorf("Expected approximately 10 filled chars, got %d", filled)
	}
}

func TestSeekbarView(t *testing.T) {
	bar := NewSeekbar(40)

	view := bar.View(65*time.Second, 130*time.Second)
	if !strings.Contains(view, "1:05") || !strings.Contains(view, "2:10") {
		t.Errorf("Expected time labels in view, got %q", view)
	}
	if strings.Count(view, "█") != 14 {
		t.Errorf("Expected half of 28 columns filled, got %d", strings.Count(view, "█"))
	}

	unknown := bar.View(0, 0)
	if strings.Count(unknown, "█") != 0 {
		t.Error("Expected an empty bar for an unknown duration")
	}
	if !strings.Contains(unknown, "0:00") {
		t.Error("Expected 0:00 for an unknown duration")
	}
}

func TestSeekbarFractionAt(t *testing.T) {
	bar := NewSeekbar(40) // bar occupies columns 6..33

	tests := []struct {
		x    int
		want float64
		ok   bool
	}{
		{0, 0, false},
		{5, 0, false},
		{6, 0, true},
		{33, 1, true},
		{34, 0, false},
	}

	for _, tt := range tests {
		got, ok := bar.FractionAt(tt.x)
		if ok != tt.ok {
			t.Errorf("FractionAt(%d) ok = %v, want %v", tt.x, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("FractionAt(%d) = %v, want %v", tt.x, got, tt.want)
		}
	}

	mid, ok := bar.FractionAt(6 + 27/2)
	if !ok || mid < 0.45 || mid > 0.55 {
		t.Errorf("Expected a fraction near the middle, got %v", mid)
	}
}
