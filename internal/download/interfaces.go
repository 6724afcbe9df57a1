package download

import (
	"context"

	"github.com/Maia-Everett/ghetto-skype/internal/browser"
	"github.com/Maia-Everett/ghetto-skype/internal/config"
)

// BrowsingContext is an ephemeral, isolated surface able to trigger one
// download.
type BrowsingContext interface {
	SetProxy(rules string) <-chan error
	DownloadURL(ctx context.Context, url string) <-chan browser.Transfer
	Destroy()
}

// ContextFactory creates a BrowsingContext bound to a fresh session partition
type ContextFactory interface {
	NewContext(partition string) (BrowsingContext, error)
}

// FactoryFunc adapts a function to ContextFactory
type FactoryFunc func(partition string) (BrowsingContext, error)

// NewContext implements ContextFactory
func (f FactoryFunc) NewContext(partition string) (BrowsingContext, error) {
	return f(partition)
}

// SettingsSource provides the live settings
type SettingsSource interface {
	Get() config.Settings
}

// Downloader is the surface the message gateway depends on
type Downloader interface {
	RequestDownload(url string)
}
