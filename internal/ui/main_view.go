package ui

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Maia-Everett/ghetto-skype/internal/config"
	"github.com/Maia-Everett/ghetto-skype/internal/ipc"
	"github.com/Maia-Everett/ghetto-skype/internal/theme"
)

// MainView is the content of the main window: a link to the web client and
// a field for opening images through the host's downloader
type MainView struct {
	window       fyne.Window
	gateway      Gateway
	localization *Localization
	clientURL    string
	onSettings   func()

	urlEntry  *widget.Entry
	openBtn   *widget.Button
	statusLbl *widget.Label
	override  *container.ThemeOverride

	mu   sync.Mutex
	zoom float64
}

// NewMainView builds the main window content and menu
func NewMainView(window fyne.Window, gateway Gateway, localization *Localization, clientURL string, settings config.Settings, onSettings func()) *MainView {
	v := &MainView{
		window:       window,
		gateway:      gateway,
		localization: localization,
		clientURL:    clientURL,
		onSettings:   onSettings,
		zoom:         settings.ZoomFactor(),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	v.setupUI()
	v.createMenu()
	return v
}

func (v *MainView) setupUI() {
	v.urlEntry = widget.NewEntry()
	v.urlEntry.SetPlaceHolder(v.localization.GetText(KeyEnterImageURL))
	v.urlEntry.OnSubmitted = func(string) { v.onOpenClick() }

	v.openBtn = widget.NewButton(IconImage+" "+v.localization.GetText(KeyOpenImage), v.onOpenClick)
	v.statusLbl = widget.NewLabel("")

	top := container.NewBorder(nil, nil, nil, v.openBtn, v.urlEntry)
	items := []fyne.CanvasObject{top, v.statusLbl}

	if link := v.clientLink(); link != nil {
		items = append([]fyne.CanvasObject{link, widget.NewSeparator()}, items...)
	}

	v.override = container.NewThemeOverride(container.NewVBox(items...), theme.Scaled(nil, v.zoom))
	v.window.SetContent(v.override)
}

func (v *MainView) clientLink() *widget.Hyperlink {
	if v.clientURL == "" {
		return nil
	}
	u, err := url.Parse(v.clientURL)
	if err != nil {
		return nil
	}
	return widget.NewHyperlink(v.localization.GetText(KeyWebClient), u)
}

func (v *MainView) createMenu() {
	settingsItem := fyne.NewMenuItem(v.localization.GetText(KeySettings), func() {
		if v.onSettings != nil {
			v.onSettings()
		}
	})
	v.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(v.localization.GetText(KeyFile), settingsItem),
	))
}

// HandleMessage reacts to host broadcasts
func (v *MainView) HandleMessage(channel string, payload any) {
	if channel != ipc.ChannelSettingsUpdated {
		return
	}
	settings, ok := payload.(config.Settings)
	if !ok {
		return
	}
	zoom := settings.ZoomFactor()
	fyne.Do(func() {
		v.applyZoom(zoom)
	})
}

// Zoom returns the zoom factor currently applied
func (v *MainView) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

func (v *MainView) applyZoom(zoom float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if zoom == v.zoom {
		return
	}
	v.zoom = zoom
	v.override.Theme = theme.Scaled(nil, zoom)
	v.override.Refresh()
}

// OpenImage validates rawURL and asks the host to download and open it
func (v *MainView) OpenImage(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return fmt.Errorf("%s", v.localization.GetText(KeyPleaseEnterURL))
	}
	if err := validateURL(rawURL); err != nil {
		return fmt.Errorf("%s: %w", v.localization.GetText(KeyInvalidURL), err)
	}

	v.gateway.Send(ipc.ChannelDownload, rawURL)
	return nil
}

func (v *MainView) onOpenClick() {
	if err := v.OpenImage(v.urlEntry.Text); err != nil {
		v.statusLbl.SetText(err.Error())
		return
	}
	v.statusLbl.SetText(v.localization.GetText(KeyOpening))
	v.urlEntry.SetText("")
}

func validateURL(input string) error {
	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}
