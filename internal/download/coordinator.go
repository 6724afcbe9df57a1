package download

import (
	"context"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Maia-Everett/ghetto-skype/internal/browser"
	"github.com/Maia-Everett/ghetto-skype/internal/logger"
	"github.com/Maia-Everett/ghetto-skype/internal/model"
	"github.com/Maia-Everett/ghetto-skype/internal/platform"
)

// Defaults
const (
	DefaultStartTimeout = 30 * time.Second
	PartitionPrefix     = "download:"
)

// Coordinator deduplicates image downloads by URL
type Coordinator struct {
	contexts ContextFactory
	settings SettingsSource
	opener   platform.Opener
	log      logger.Logger

	startTimeout time.Duration
	tempName     func() string

	mu    sync.Mutex
	cache map[string]*model.CacheEntry
	wg    sync.WaitGroup
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithStartTimeout bounds how long an acquisition waits for its transfer to
// start. Zero or negative disables the bound.
func WithStartTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.startTimeout = d
	}
}

// WithTempName overrides how destination base names are generated
func WithTempName(fn func() string) Option {
	return func(c *Coordinator) {
		c.tempName = fn
	}
}

// NewCoordinator creates a coordinator with an empty cache
func NewCoordinator(contexts ContextFactory, settings SettingsSource, opener platform.Opener, log logger.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		contexts:     contexts,
		settings:     settings,
		opener:       opener,
		log:          log.With(logger.String("component", "download")),
		startTimeout: DefaultStartTimeout,
		tempName:     platform.TempName,
		cache:        make(map[string]*model.CacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestDownload opens url in the default viewer, downloading it first when
// needed. A URL whose download is still running is ignored. Nothing is
// reported to the caller; failures only show up in the log.
func (c *Coordinator) RequestDownload(url string) {
	c.mu.Lock()
	entry, ok := c.cache[url]
	if ok {
		complete := entry.Complete()
		path := entry.Path
		c.mu.Unlock()

		if complete {
			c.open(path)
		} else {
			c.log.Debug("Download already in flight, dropping request for %s", url)
		}
		return
	}

	entry = model.NewCacheEntry(url)
	c.cache[url] = entry
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.acquire(entry)
	}()
}

// Entry returns a copy of the cache entry for url
func (c *Coordinator) Entry(url string) (model.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[url]
	if !ok {
		return model.CacheEntry{URL: url, State: model.EntryAbsent}, false
	}
	return *entry, true
}

// State returns the state of url in the cache
func (c *Coordinator) State(url string) model.EntryState {
	entry, _ := c.Entry(url)
	return entry.State
}

// Entries returns copies of all cache entries
func (c *Coordinator) Entries() []model.CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]model.CacheEntry, 0, len(c.cache))
	for _, entry := range c.cache {
		entries = append(entries, *entry)
	}
	return entries
}

// Wait blocks until every acquisition started so far has returned
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// acquire runs one acquisition for entry: transfer-started assigns the path,
// transfer-finished marks the entry complete.
func (c *Coordinator) acquire(entry *model.CacheEntry) {
	url := entry.URL
	partition := PartitionPrefix + uuid.NewString()

	bc, err := c.contexts.NewContext(partition)
	if err != nil {
		c.log.Error("Failed to create browsing context for %s: %v", url, err)
		c.release(entry)
		return
	}

	if rules := c.settings.Get().ProxyRules(); rules != "" {
		applied := bc.SetProxy(rules)
		go func() {
			if err := <-applied; err != nil {
				c.log.Warn("Proxy rules not applied for %s: %v", partition, err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := bc.DownloadURL(ctx, url)

	var timeout <-chan time.Time
	if c.startTimeout > 0 {
		timer := time.NewTimer(c.startTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	var transfer browser.Transfer
	select {
	case tr, ok := <-started:
		if !ok {
			c.log.Warn("No download started for %s", url)
			bc.Destroy()
			c.release(entry)
			return
		}
		transfer = tr
	case <-timeout:
		c.log.Warn("Download of %s did not start within %s, tearing down", url, c.startTimeout)
		bc.Destroy()
		c.release(entry)
		return
	}

	path := c.tempName() + platform.ExtensionForMIME(transfer.MIMEType())

	c.mu.Lock()
	entry.MarkStarted(path, transfer.MIMEType())
	c.mu.Unlock()

	transfer.SetSavePath(path)
	c.log.Debug("Downloading %s to %s", url, path)

	<-transfer.Done()
	bc.Destroy()

	if err := transfer.Err(); err != nil {
		// The entry stays pending, so later requests for url are dropped
		c.log.Error("Download of %s failed: %v", url, err)
		return
	}

	c.log.Info("Downloaded %s (%s)", url, humanize.Bytes(uint64(transfer.Size())))
	c.open(path)

	c.mu.Lock()
	entry.MarkComplete(transfer.Size())
	c.mu.Unlock()
}

// release drops a reservation whose transfer never started so the URL can be
// requested again
func (c *Coordinator) release(entry *model.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.cache[entry.URL]; ok && current == entry && !entry.HasPath() {
		delete(c.cache, entry.URL)
	}
}

func (c *Coordinator) open(path string) {
	if err := c.opener.Open(path); err != nil {
		c.log.Warn("Failed to open %s: %v", path, err)
	}
}
