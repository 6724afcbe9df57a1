package host

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
	"github.com/Maia-Everett/ghetto-skype/internal/browser"
	"github.com/Maia-Everett/ghetto-skype/internal/config"
	"github.com/Maia-Everett/ghetto-skype/internal/download"
	"github.com/Maia-Everett/ghetto-skype/internal/ipc"
	"github.com/Maia-Everett/ghetto-skype/internal/logger"
	"github.com/Maia-Everett/ghetto-skype/internal/platform"
	"github.com/Maia-Everett/ghetto-skype/internal/theme"
	"github.com/Maia-Everett/ghetto-skype/internal/ui"
	"github.com/Maia-Everett/ghetto-skype/internal/window"
)

// Options configures a Host
type Options struct {
	UserDataDir  string
	ThemesDir    string
	ClientURL    string
	Language     string
	StartTimeout time.Duration

	// Opener defaults to platform.DefaultOpener
	Opener platform.Opener
	// Contexts defaults to hidden fyne windows with isolated sessions
	Contexts download.ContextFactory
	// OnPersistError defaults to logging the error and exiting with status 1
	OnPersistError func(error)
}

// Host is the process-wide service object
type Host struct {
	app  fyne.App
	log  logger.Logger
	opts Options

	store        *config.Store
	windows      *window.Registry
	downloads    *download.Coordinator
	bus          *ipc.Bus
	themes       *theme.Loader
	localization *ui.Localization

	mu          sync.Mutex
	mainWin     *window.Handle
	mainView    *ui.MainView
	settingsWin *window.Handle
}

// New loads settings and constructs the store, the window registry, the
// download coordinator and the gateway bindings, in that order
func New(app fyne.App, log logger.Logger, opts Options) *Host {
	h := &Host{
		app:  app,
		log:  log,
		opts: opts,
	}

	settingsPath := filepath.Join(opts.UserDataDir, config.SettingsFileName)
	settings := config.Load(settingsPath, log)

	h.windows = window.NewRegistry(app, log)
	h.store = config.NewStore(settingsPath, settings, h.windows, log)
	h.store.OnPersisted(h.closeSettings)

	contexts := opts.Contexts
	if contexts == nil {
		factory := browser.NewFactory(app, log)
		contexts = download.FactoryFunc(func(partition string) (download.BrowsingContext, error) {
			bc, err := factory.NewContext(partition)
			if err != nil {
				return nil, err
			}
			return bc, nil
		})
	}
	opener := opts.Opener
	if opener == nil {
		opener = platform.DefaultOpener{}
	}

	var downloadOpts []download.Option
	if opts.StartTimeout != 0 {
		downloadOpts = append(downloadOpts, download.WithStartTimeout(opts.StartTimeout))
	}
	h.downloads = download.NewCoordinator(contexts, h.store, opener, log, downloadOpts...)

	h.themes = theme.NewLoader(opts.ThemesDir)
	h.localization = ui.NewLocalization()
	if opts.Language != "" {
		h.localization.SetLanguage(opts.Language)
	}

	h.bus = ipc.NewBus(log)
	h.bind()
	return h
}

func (h *Host) bind() {
	h.bus.On(ipc.ChannelDownload, func(payload any) {
		url, ok := payload.(string)
		if !ok || url == "" {
			h.log.Warn("Ignoring %s with payload %T", ipc.ChannelDownload, payload)
			return
		}
		h.downloads.RequestDownload(url)
	})

	h.bus.On(ipc.ChannelSaveSettings, func(payload any) {
		partial, ok := toSettings(payload)
		if !ok {
			h.log.Warn("Ignoring %s with payload %T", ipc.ChannelSaveSettings, payload)
			return
		}
		result := h.store.Save(partial)
		go h.watchPersist(result)
	})

	h.bus.Handle(ipc.ChannelGetSettings, func(any) (any, error) {
		return h.store.Get(), nil
	})
}

func toSettings(payload any) (config.Settings, bool) {
	switch p := payload.(type) {
	case config.Settings:
		return p, true
	case map[string]any:
		return config.Settings(p), true
	}
	return nil, false
}

func (h *Host) watchPersist(result <-chan error) {
	err := <-result
	if err == nil {
		return
	}
	if !IsFatal(err) {
		h.log.Warn("Settings save: %v", err)
		return
	}
	if h.opts.OnPersistError != nil {
		h.opts.OnPersistError(err)
		return
	}
	h.log.Error("Settings could not be saved, exiting: %v", err)
	os.Exit(1)
}

// Run dispatches gateway messages until ctx is done
func (h *Host) Run(ctx context.Context) error {
	return h.bus.Run(ctx)
}

// Start runs the gateway in the background and opens the main window
func (h *Host) Start(ctx context.Context) *window.Handle {
	go func() {
		if err := h.Run(ctx); err != nil && ctx.Err() == nil {
			h.log.Error("Message gateway stopped: %v", err)
		}
	}()
	return h.OpenMain()
}

// OpenMain creates the main window or shows the existing one
func (h *Host) OpenMain() *window.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.mainWin != nil && !h.mainWin.Closed() {
		h.mainWin.Show()
		return h.mainWin
	}

	handle := h.windows.Create(window.Options{
		Title:  h.localization.GetText(ui.KeyAppTitle),
		Width:  ui.MainWindowWidth,
		Height: ui.MainWindowHeight,
		Hidden: true,
	})
	view := ui.NewMainView(handle.Window(), h.bus, h.localization, h.opts.ClientURL, h.store.Get(), func() { h.OpenSettings() })
	handle.OnMessage(view.HandleMessage)
	handle.Window().SetMaster()
	handle.Show()

	h.mainWin = handle
	h.mainView = view
	return handle
}

// OpenSettings creates the settings window, or shows it when already open.
// The window is scaled by the ZoomFactor setting and styled by the Theme
// setting.
func (h *Host) OpenSettings() *window.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.settingsWin != nil {
		h.settingsWin.Show()
		return h.settingsWin
	}

	settings := h.store.Get()
	view := ui.NewSettingsView(h.bus, h.localization, h.themes.Names())

	handle := h.windows.Create(window.Options{
		Title:  h.localization.GetText(ui.KeySettingsTitle),
		Width:  ui.SettingsWindowWidth,
		Height: ui.SettingsWindowHeight,
		Center: true,
		Hidden: true,
	})
	handle.SetContent(container.NewThemeOverride(view.Content(), h.settingsTheme(settings)))
	handle.OnClosed(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.settingsWin == handle {
			h.settingsWin = nil
		}
	})

	h.settingsWin = handle
	handle.Show()
	return handle
}

func (h *Host) settingsTheme(settings config.Settings) fyne.Theme {
	var base fyne.Theme
	if name := settings.Theme(); name != "" {
		t, err := h.themes.Load(name)
		if err != nil {
			h.log.Warn("Theme %q not applied: %v", name, err)
		} else {
			base = t
		}
	}
	return theme.Scaled(base, settings.ZoomFactor())
}

// SettingsWindow returns the open settings window, if any
func (h *Host) SettingsWindow() *window.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.settingsWin
}

func (h *Host) closeSettings() {
	h.mu.Lock()
	handle := h.settingsWin
	h.settingsWin = nil
	h.mu.Unlock()

	if handle != nil {
		fyne.Do(handle.Close)
	}
}

// Store returns the settings store
func (h *Host) Store() *config.Store {
	return h.store
}

// Windows returns the window registry
func (h *Host) Windows() *window.Registry {
	return h.windows
}

// Downloads returns the image download coordinator
func (h *Host) Downloads() *download.Coordinator {
	return h.downloads
}

// Gateway returns the message bus windows talk to
func (h *Host) Gateway() *ipc.Bus {
	return h.bus
}

// IsFatal reports whether err should stop the process under the default
// policy
func IsFatal(err error) bool {
	return apperr.IsKind(err, apperr.KindPersist)
}
