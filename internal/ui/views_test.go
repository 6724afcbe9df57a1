package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/Maia-Everett/ghetto-skype/internal/config"
	"github.com/Maia-Everett/ghetto-skype/internal/ipc"
)

type sent struct {
	channel string
	payload any
}

type fakeGateway struct {
	mu       sync.Mutex
	sent     []sent
	settings config.Settings
}

func (g *fakeGateway) Send(channel string, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, sent{channel, payload})
}

func (g *fakeGateway) Invoke(_ context.Context, channel string, _ any) (any, error) {
	return g.settings, nil
}

func (g *fakeGateway) messages() []sent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]sent(nil), g.sent...)
}

func TestMainViewOpenImage(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	gw := &fakeGateway{}
	v := NewMainView(app.NewWindow("main"), gw, NewLocalization(), "https://web.skype.com", config.Defaults(), nil)

	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "", wantErr: true},
		{input: "ftp://example.com/a.png", wantErr: true},
		{input: "https://", wantErr: true},
		{input: " https://example.com/a.png ", wantErr: false},
	}
	for _, tt := range tests {
		err := v.OpenImage(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("OpenImage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}

	msgs := gw.messages()
	if len(msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(msgs))
	}
	if msgs[0].channel != ipc.ChannelDownload || msgs[0].payload != "https://example.com/a.png" {
		t.Errorf("sent %+v", msgs[0])
	}
}

func TestMainViewAppliesBroadcastZoom(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	v := NewMainView(app.NewWindow("main"), &fakeGateway{}, NewLocalization(), "", config.Defaults(), nil)

	updated := config.Defaults()
	updated[config.KeyZoomFactor] = 1.5
	v.HandleMessage(ipc.ChannelSettingsUpdated, updated)

	deadline := time.Now().Add(2 * time.Second)
	for v.Zoom() != 1.5 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if v.Zoom() != 1.5 {
		t.Errorf("zoom = %v, want 1.5", v.Zoom())
	}

	// Other channels are ignored
	v.HandleMessage(ipc.ChannelDownload, "x")
}

func TestMainViewZoomConcurrentAccess(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	v := NewMainView(app.NewWindow("main"), &fakeGateway{}, NewLocalization(), "", config.Defaults(), nil)

	var wg sync.WaitGroup
	for i := 1; i <= 4; i++ {
		wg.Add(2)
		zoom := 1 + float64(i)/4
		go func() {
			defer wg.Done()
			updated := config.Defaults()
			updated[config.KeyZoomFactor] = zoom
			v.HandleMessage(ipc.ChannelSettingsUpdated, updated)
		}()
		go func() {
			defer wg.Done()
			if z := v.Zoom(); z < 1 || z > 2 {
				t.Errorf("zoom = %v out of range", z)
			}
		}()
	}
	wg.Wait()
}

func TestSettingsViewLoadsAndSaves(t *testing.T) {
	_ = test.NewApp()

	current := config.Defaults()
	current[config.KeyProxyRules] = "socks5://127.0.0.1:1080"
	current[config.KeyTheme] = "dark"
	gw := &fakeGateway{settings: current}

	v := NewSettingsView(gw, NewLocalization(), []string{"compact", "dark"})

	if v.proxyEntry.Text != "socks5://127.0.0.1:1080" {
		t.Errorf("proxy entry = %q", v.proxyEntry.Text)
	}
	if v.themeSelect.Selected != "dark" {
		t.Errorf("theme = %q, want dark", v.themeSelect.Selected)
	}

	v.zoomEntry.SetText("1.25")
	if err := v.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	msgs := gw.messages()
	if len(msgs) != 1 || msgs[0].channel != ipc.ChannelSaveSettings {
		t.Fatalf("sent %+v", msgs)
	}
	partial := msgs[0].payload.(config.Settings)
	if partial.ZoomFactor() != 1.25 || partial.Theme() != "dark" || partial.ProxyRules() != "socks5://127.0.0.1:1080" {
		t.Errorf("partial = %v", partial)
	}
}

func TestSettingsViewRejectsInvalidZoom(t *testing.T) {
	_ = test.NewApp()

	gw := &fakeGateway{settings: config.Defaults()}
	v := NewSettingsView(gw, NewLocalization(), nil)

	for _, zoom := range []string{"abc", "0", "10"} {
		v.zoomEntry.SetText(zoom)
		if err := v.Save(); err == nil {
			t.Errorf("Save with zoom %q succeeded", zoom)
		}
	}
	if n := len(gw.messages()); n != 0 {
		t.Errorf("sent %d messages for invalid form", n)
	}
}

func TestSettingsViewDefaultTheme(t *testing.T) {
	_ = test.NewApp()

	v := NewSettingsView(&fakeGateway{settings: config.Defaults()}, NewLocalization(), []string{"dark"})
	partial, err := v.Partial()
	if err != nil {
		t.Fatalf("Partial: %v", err)
	}
	if partial.Theme() != NoTheme {
		t.Errorf("theme = %q, want empty", partial.Theme())
	}
}

func TestLocalizationFallback(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")
	if got := l.GetText(KeyProxyHint); got == KeyProxyHint {
		t.Errorf("missing russian text did not fall back to english")
	}
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("unknown language changed current language")
	}
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("GetText(no_such_key) = %q", got)
	}
}
