package window

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/Maia-Everett/ghetto-skype/internal/logger"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	return NewRegistry(app, logger.NewMockLogger())
}

func TestCreateRegistersWindow(t *testing.T) {
	registry := newTestRegistry(t)

	h := registry.Create(Options{Title: "Main", Width: 800, Height: 600})

	if !registry.Contains(h) {
		t.Fatal("Created window should be in the live set")
	}
	if registry.Len() != 1 {
		t.Errorf("Expected 1 live window, got %d", registry.Len())
	}
	if h.Title() != "Main" {
		t.Errorf("Expected title 'Main', got '%s'", h.Title())
	}
	if h.ID() == 0 {
		t.Error("Expected a non-zero window ID")
	}
}

func TestCloseRemovesWindow(t *testing.T) {
	registry := newTestRegistry(t)

	first := registry.Create(Options{Title: "first"})
	second := registry.Create(Options{Title: "second"})
	third := registry.Create(Options{Title: "third"})

	// Close out of creation order; removal is by identity, not index
	first.Close()
	if registry.Contains(first) {
		t.Error("Closed window should leave the live set")
	}
	if !registry.Contains(second) || !registry.Contains(third) {
		t.Error("Other windows must stay registered")
	}

	third.Close()
	third.Close() // idempotent

	windows := registry.Windows()
	if len(windows) != 1 || windows[0] != second {
		t.Errorf("Expected only 'second' to remain, got %d windows", len(windows))
	}
}

func TestBroadcastReachesLiveWindowsOnly(t *testing.T) {
	registry := newTestRegistry(t)

	received := map[string]int{}
	listen := func(h *Handle) {
		h.OnMessage(func(channel string, payload any) {
			if channel == "settings:updated" {
				received[h.Title()]++
			}
		})
	}

	a := registry.Create(Options{Title: "a"})
	b := registry.Create(Options{Title: "b"})
	listen(a)
	listen(b)

	b.Close()
	registry.Broadcast("settings:updated", map[string]any{"Theme": "dark"})

	c := registry.Create(Options{Title: "c"})
	listen(c)

	if received["a"] != 1 {
		t.Errorf("Live window should receive the broadcast, got %d", received["a"])
	}
	if received["b"] != 0 {
		t.Error("Closed window must not receive broadcasts")
	}
	if received["c"] != 0 {
		t.Error("Window created after the broadcast must not receive it")
	}
}

func TestBroadcastSkipsWindowClosedMidway(t *testing.T) {
	registry := newTestRegistry(t)

	first := registry.Create(Options{Title: "first"})
	second := registry.Create(Options{Title: "second"})

	secondReceived := false
	first.OnMessage(func(string, any) { second.Close() })
	second.OnMessage(func(string, any) { secondReceived = true })

	registry.Broadcast("ping", nil)

	if secondReceived {
		t.Error("Window closed during the broadcast should be skipped")
	}
	if registry.Len() != 1 {
		t.Errorf("Expected 1 live window, got %d", registry.Len())
	}
}

func TestOnClosedHooksRunOnce(t *testing.T) {
	registry := newTestRegistry(t)
	h := registry.Create(Options{Title: "settings"})

	calls := 0
	h.OnClosed(func() { calls++ })

	h.Close()
	h.Close()

	if calls != 1 {
		t.Errorf("Expected close hook to run once, ran %d times", calls)
	}
	if !h.Closed() {
		t.Error("Handle should report closed")
	}
	if h.Send("x", nil) {
		t.Error("Send on a closed handle should report false")
	}
}

func TestNewHiddenIsNotRegistered(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	registry := NewRegistry(app, logger.NewMockLogger())

	hidden := NewHidden(app, "download")
	defer hidden.Close()

	if registry.Len() != 0 {
		t.Errorf("Hidden windows must not be registered, got %d", registry.Len())
	}
}
