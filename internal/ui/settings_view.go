package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Maia-Everett/ghetto-skype/internal/config"
	"github.com/Maia-Everett/ghetto-skype/internal/ipc"
)

// settingsFetchTimeout bounds the settings:get round trip when the view opens
const settingsFetchTimeout = 5 * time.Second

// SettingsView is the settings form. Saving sends the edited keys to the host,
// which closes the window once they are on disk.
type SettingsView struct {
	gateway      Gateway
	localization *Localization
	themes       []string

	proxyEntry  *widget.Entry
	zoomEntry   *widget.Entry
	themeSelect *widget.Select
	saveBtn     *widget.Button
	errorLbl    *widget.Label
	content     fyne.CanvasObject
}

// NewSettingsView creates the form, fetching the current settings through
// the gateway. themes lists the selectable theme names.
func NewSettingsView(gateway Gateway, localization *Localization, themes []string) *SettingsView {
	v := &SettingsView{
		gateway:      gateway,
		localization: localization,
		themes:       themes,
	}
	v.createUI()

	ctx, cancel := context.WithTimeout(context.Background(), settingsFetchTimeout)
	defer cancel()
	if current, err := gateway.Invoke(ctx, ipc.ChannelGetSettings, nil); err == nil {
		if settings, ok := current.(config.Settings); ok {
			v.Load(settings)
		}
	}
	return v
}

func (v *SettingsView) createUI() {
	v.proxyEntry = widget.NewEntry()
	v.proxyEntry.SetPlaceHolder(v.localization.GetText(KeyProxyHint))

	v.zoomEntry = widget.NewEntry()
	v.zoomEntry.SetPlaceHolder("1.0")

	defaultLabel := v.localization.GetText(KeyDefaultTheme)
	options := append([]string{defaultLabel}, v.themes...)
	v.themeSelect = widget.NewSelect(options, nil)
	v.themeSelect.SetSelected(defaultLabel)

	v.saveBtn = widget.NewButton(v.localization.GetText(KeySave), v.onSave)
	v.errorLbl = widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabel(v.localization.GetText(KeyProxyRules)+":"),
		v.proxyEntry,

		widget.NewLabel(v.localization.GetText(KeyZoomFactor)+":"),
		v.zoomEntry,

		widget.NewLabel(v.localization.GetText(KeyTheme)+":"),
		v.themeSelect,

		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, v.saveBtn, v.errorLbl),
	)
	v.content = container.NewVScroll(form)
}

// Content returns the root canvas object
func (v *SettingsView) Content() fyne.CanvasObject {
	return v.content
}

// Load fills the form from settings
func (v *SettingsView) Load(settings config.Settings) {
	v.proxyEntry.SetText(settings.ProxyRules())
	v.zoomEntry.SetText(strconv.FormatFloat(settings.ZoomFactor(), 'g', -1, 64))
	if name := settings.Theme(); name != NoTheme {
		v.themeSelect.SetSelected(name)
	} else {
		v.themeSelect.SetSelected(v.localization.GetText(KeyDefaultTheme))
	}
}

// Partial returns the form contents as a settings update
func (v *SettingsView) Partial() (config.Settings, error) {
	zoom, err := strconv.ParseFloat(strings.TrimSpace(v.zoomEntry.Text), 64)
	if err != nil || zoom < MinZoomFactor || zoom > MaxZoomFactor {
		return nil, fmt.Errorf("%s", v.localization.GetText(KeyInvalidZoom))
	}

	themeName := v.themeSelect.Selected
	if themeName == v.localization.GetText(KeyDefaultTheme) {
		themeName = NoTheme
	}

	return config.Settings{
		config.KeyProxyRules: strings.TrimSpace(v.proxyEntry.Text),
		config.KeyZoomFactor: zoom,
		config.KeyTheme:      themeName,
	}, nil
}

// Save validates the form and sends it to the host
func (v *SettingsView) Save() error {
	partial, err := v.Partial()
	if err != nil {
		return err
	}
	v.gateway.Send(ipc.ChannelSaveSettings, partial)
	return nil
}

func (v *SettingsView) onSave() {
	if err := v.Save(); err != nil {
		v.errorLbl.SetText(err.Error())
		return
	}
	v.errorLbl.SetText("")
}
