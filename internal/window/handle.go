package window

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Listener receives messages sent to a window
type Listener func(channel string, payload any)

// Handle is an opaque reference to one registered window
type Handle struct {
	id  uint64
	win fyne.Window

	mu        sync.Mutex
	listeners []Listener
	onClosed  []func()
	closed    bool
	closeOnce sync.Once
}

// ID returns the registry-assigned identifier
func (h *Handle) ID() uint64 {
	return h.id
}

// Window returns the underlying fyne window
func (h *Handle) Window() fyne.Window {
	return h.win
}

// Title returns the window title
func (h *Handle) Title() string {
	return h.win.Title()
}

// OnMessage subscribes fn to every message sent to this window
func (h *Handle) OnMessage(fn Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// OnClosed registers fn to run once the window has been torn down
func (h *Handle) OnClosed(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClosed = append(h.onClosed, fn)
}

// Send delivers a message to the window's listeners. It reports false when
// the window is already closed.
func (h *Handle) Send(channel string, payload any) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	listeners := append([]Listener(nil), h.listeners...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(channel, payload)
	}
	return true
}

// Closed reports whether the window has been torn down
func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Show makes the window visible
func (h *Handle) Show() {
	h.win.Show()
}

// SetContent replaces the window content
func (h *Handle) SetContent(content fyne.CanvasObject) {
	h.win.SetContent(content)
}

// Close destroys the window. Teardown hooks run exactly once whether the
// close comes from here or from the user.
func (h *Handle) Close() {
	if h.Closed() {
		return
	}
	h.win.Close()
	h.teardown()
}

func (h *Handle) teardown() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		hooks := h.onClosed
		h.onClosed = nil
		h.listeners = nil
		h.mu.Unlock()

		for _, fn := range hooks {
			fn()
		}
	})
}
