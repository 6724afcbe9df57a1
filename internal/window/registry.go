package window

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/Maia-Everett/ghetto-skype/internal/logger"
)

// Options configures a new top-level window
type Options struct {
	Title  string
	Width  float32
	Height float32
	Center bool
	// Hidden leaves the window unshown after creation
	Hidden bool
	// FixedSize disables user resizing
	FixedSize bool
}

// Registry tracks every live top-level window created by the host
type Registry struct {
	app fyne.App
	log logger.Logger

	mu     sync.Mutex
	live   []*Handle
	nextID uint64
}

// NewRegistry creates an empty registry creating windows on app
func NewRegistry(app fyne.App, log logger.Logger) *Registry {
	return &Registry{
		app: app,
		log: log.With(logger.String("component", "windows")),
	}
}

// Create instantiates a window, adds it to the live set and arranges for it
// to leave the set when it is closed.
func (r *Registry) Create(opts Options) *Handle {
	win := r.app.NewWindow(opts.Title)
	if opts.Width > 0 && opts.Height > 0 {
		win.Resize(fyne.NewSize(opts.Width, opts.Height))
	}
	if opts.FixedSize {
		win.SetFixedSize(true)
	}
	if opts.Center {
		win.CenterOnScreen()
	}

	r.mu.Lock()
	r.nextID++
	h := &Handle{id: r.nextID, win: win}
	r.live = append(r.live, h)
	r.mu.Unlock()

	h.OnClosed(func() { r.remove(h) })
	win.SetOnClosed(h.teardown)

	r.log.Debug("Window %d created: %q", h.id, opts.Title)

	if !opts.Hidden {
		win.Show()
	}
	return h
}

// Broadcast sends a message to every window live at the time of the call.
// Windows closed while the broadcast is running are skipped.
func (r *Registry) Broadcast(channel string, payload any) {
	for _, h := range r.Windows() {
		if !h.Send(channel, payload) {
			r.log.Debug("Skipping closed window %d for %s", h.id, channel)
		}
	}
}

// Windows returns a snapshot of the live set in creation order
func (r *Registry) Windows() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Handle(nil), r.live...)
}

// Len returns the number of live windows
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Contains reports whether h is in the live set
func (r *Registry) Contains(h *Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, live := range r.live {
		if live == h {
			return true
		}
	}
	return false
}

func (r *Registry) remove(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, live := range r.live {
		if live == h {
			r.live = append(r.live[:i], r.live[i+1:]...)
			r.log.Debug("Window %d removed", h.id)
			return
		}
	}
}

// NewHidden creates a window that is never shown and never registered. The
// caller owns it and must Close it.
func NewHidden(app fyne.App, title string) fyne.Window {
	return app.NewWindow(title)
}
