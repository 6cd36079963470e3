package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"asteroid-tracker/internal/neows"
	"asteroid-tracker/internal/tracker"
)

// 34 panel columns leave an 80x24 scene.
const (
	termW = 114
	termH = 26
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

type fakeFeed struct {
	records []neows.Record
	err     error
}

func (f fakeFeed) Feed(ctx context.Context, start, end string) ([]neows.Record, error) {
	return f.records, f.err
}

func fp(v float64) *float64 { return &v }

func newTestModel(t *testing.T, feed tracker.FeedSource) (Model, *tracker.Session) {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s, err := tracker.New(tracker.Options{Rand: constSource(0.5), Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("tracker.New: %v", err)
	}
	s.Frame(now)
	m := New(s, feed, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: termW, Height: termH})
	return next.(Model), s
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestSceneSizeReservesPanel(t *testing.T) {
	m, _ := newTestModel(t, nil)
	cols, rows := m.sceneSize()
	if cols != 80 || rows != 24 {
		t.Fatalf("scene size %dx%d, want 80x24", cols, rows)
	}

	narrow := m
	narrow.width = 60
	if cols, _ := narrow.sceneSize(); cols != 60 {
		t.Fatalf("narrow terminal should use the full width, got %d", cols)
	}
}

func TestHoverSunShowsTooltip(t *testing.T) {
	m, s := newTestModel(t, nil)
	m.Update(tea.MouseMsg{X: 40, Y: 12 + headerRows, Action: tea.MouseActionMotion})

	var hover string
	var tooltip tracker.Tooltip
	s.Inspect(func(v tracker.View) {
		if v.Hover != nil {
			hover = v.Hover.Name
		}
		tooltip = v.Tooltip
	})
	if hover != "Sun" {
		t.Fatalf("hover = %q, want Sun", hover)
	}
	if !tooltip.Visible || !strings.HasPrefix(tooltip.Text, "Sun") {
		t.Fatalf("unexpected tooltip %+v", tooltip)
	}
	if !strings.Contains(m.View(), "Distance to Earth") {
		t.Fatalf("view missing tooltip text")
	}

	// moving into the side panel clears the hover
	m.Update(tea.MouseMsg{X: 100, Y: 5, Action: tea.MouseActionMotion})
	s.Inspect(func(v tracker.View) {
		if v.Hover != nil || v.Tooltip.Visible {
			t.Fatalf("hover not cleared: %v %+v", v.Hover, v.Tooltip)
		}
	})
}

func TestClickFocusesBody(t *testing.T) {
	m, s := newTestModel(t, nil)
	m.Update(tea.MouseMsg{X: 40, Y: 12 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	s.Inspect(func(v tracker.View) {
		if v.FocusLabel != "Focused: Sun" {
			t.Fatalf("focus label %q", v.FocusLabel)
		}
		if v.Popup.Visible {
			t.Fatalf("popup should stay hidden for the Sun")
		}
	})

	// presses in the panel are ignored
	m.Update(tea.MouseMsg{X: 100, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	s.Inspect(func(v tracker.View) {
		if v.FocusLabel != "Focused: Sun" {
			t.Fatalf("focus changed to %q", v.FocusLabel)
		}
	})
}

func TestKeys(t *testing.T) {
	m, s := newTestModel(t, nil)

	m.Update(runeKey("t"))
	if s.Mode() != tracker.Realistic {
		t.Fatalf("mode after t = %v", s.Mode())
	}

	next, _ := m.Update(runeKey("?"))
	m = next.(Model)
	if !m.showHelp {
		t.Fatalf("? should open help")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.showHelp {
		t.Fatalf("esc should close help")
	}

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestLoadAddsAsteroids(t *testing.T) {
	feed := fakeFeed{records: []neows.Record{{
		ID:                "1",
		Name:              "2025 AB",
		DiameterMaxMeters: fp(200),
		VelocityKmS:       fp(6),
		MissDistanceKm:    fp(50000),
	}}}
	m, s := newTestModel(t, feed)
	if m.status == "" {
		t.Fatalf("expected loading status")
	}
	before := s.Len()

	msg := waitForLoad(s.StartLoad(context.Background(), feed))()
	next, _ := m.Update(msg)
	m = next.(Model)
	if s.Len() != before+1 {
		t.Fatalf("Len = %d, want %d", s.Len(), before+1)
	}
	if !strings.HasPrefix(m.status, "Loaded 1 asteroids") {
		t.Fatalf("status %q", m.status)
	}

	if msg := waitForLoad(s.StartLoad(context.Background(), feed))(); msg != nil {
		t.Fatalf("second load should yield nothing, got %T", msg)
	}
}

func TestLoadFailureKeepsBodies(t *testing.T) {
	feed := fakeFeed{err: errors.New("boom")}
	m, s := newTestModel(t, feed)
	before := s.Len()
	next, _ := m.Update(waitForLoad(s.StartLoad(context.Background(), feed))())
	m = next.(Model)
	if s.Len() != before {
		t.Fatalf("failed load changed the registry")
	}
	if m.status != "Feed unavailable: boom" {
		t.Fatalf("status %q", m.status)
	}
}

func TestFrameMsgReschedules(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := m.Update(frameMsg(time.Date(2025, 3, 1, 12, 0, 1, 0, time.UTC)))
	if cmd == nil {
		t.Fatalf("frame did not schedule the next tick")
	}
}
