package browser

import "sync"

// Transfer is one download triggered inside a browsing context. The data is
// not written anywhere until SetSavePath is called.
type Transfer interface {
	URL() string
	MIMEType() string
	SetSavePath(path string)
	SavePath() string
	// Done is closed when the transfer has finished, successfully or not
	Done() <-chan struct{}
	Err() error
	Size() int64
}

// Item is the Transfer implementation used by Context
type Item struct {
	url      string
	mimeType string

	pathOnce sync.Once
	pathSet  chan struct{}
	done     chan struct{}

	mu       sync.Mutex
	savePath string
	size     int64
	err      error
}

func newItem(url, mimeType string) *Item {
	return &Item{
		url:      url,
		mimeType: mimeType,
		pathSet:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (i *Item) URL() string {
	return i.url
}

// MIMEType returns the Content-Type reported by the server
func (i *Item) MIMEType() string {
	return i.mimeType
}

// SetSavePath assigns the destination. Only the first call has an effect.
func (i *Item) SetSavePath(path string) {
	i.pathOnce.Do(func() {
		i.mu.Lock()
		i.savePath = path
		i.mu.Unlock()
		close(i.pathSet)
	})
}

func (i *Item) SavePath() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.savePath
}

func (i *Item) Done() <-chan struct{} {
	return i.done
}

func (i *Item) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// Size returns the number of bytes written
func (i *Item) Size() int64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.size
}

func (i *Item) finish(size int64, err error) {
	i.mu.Lock()
	i.size = size
	i.err = err
	i.mu.Unlock()
	close(i.done)
}
