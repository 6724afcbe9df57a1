package browser

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	downloader "go.bug.st/downloader/v2"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
	"github.com/Maia-Everett/ghetto-skype/internal/logger"
	"github.com/Maia-Everett/ghetto-skype/internal/window"
)

// stagingSuffix marks partially written files
const stagingSuffix = ".part"

// Factory creates ephemeral browsing contexts
type Factory struct {
	app fyne.App
	log logger.Logger
}

// NewFactory creates a Factory. A nil app produces contexts without a
// backing window.
func NewFactory(app fyne.App, log logger.Logger) *Factory {
	return &Factory{app: app, log: log}
}

// NewContext creates a hidden browsing context bound to a fresh session for
// partition.
func (f *Factory) NewContext(partition string) (*Context, error) {
	session, err := NewSession(partition)
	if err != nil {
		return nil, err
	}

	staging, err := os.MkdirTemp("", "ghetto-skype-staging-")
	if err != nil {
		return nil, errors.Wrap(err, "creating staging directory")
	}

	c := &Context{
		session: session,
		staging: staging,
		log:     f.log.With(logger.String("partition", partition)),
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	if f.app != nil {
		fyne.DoAndWait(func() {
			c.window = window.NewHidden(f.app, partition)
		})
	}
	return c, nil
}

// Context is one ephemeral browsing context. It is not registered with the
// window registry; its owner must call Destroy.
type Context struct {
	session *Session
	window  fyne.Window
	staging string
	log     logger.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	destroy sync.Once
}

// Session returns the context's isolated session
func (c *Context) Session() *Session {
	return c.session
}

// SetProxy applies proxy rules to the context's session
func (c *Context) SetProxy(rules string) <-chan error {
	return c.session.SetProxy(rules)
}

// DownloadURL navigates to rawURL expecting it to trigger a download. The
// returned channel yields the Transfer once the server has answered and is
// then closed; it is closed without a value when no download starts. The
// body is only consumed after the receiver calls SetSavePath.
func (c *Context) DownloadURL(ctx context.Context, rawURL string) <-chan Transfer {
	started := make(chan Transfer, 1)

	go func() {
		defer close(started)

		ctx, cancel := mergeContexts(ctx, c.ctx)
		defer cancel()

		staging := filepath.Join(c.staging, uuid.NewString()+stagingSuffix)
		d, err := c.start(ctx, staging, rawURL)
		if err != nil {
			c.log.Warn("Download did not start for %s: %v", rawURL, err)
			return
		}

		item := newItem(rawURL, d.Resp.Header.Get("Content-Type"))
		started <- item

		select {
		case <-item.pathSet:
		case <-ctx.Done():
			_ = d.Close()
			item.finish(0, ctx.Err())
			return
		}

		if err := d.Run(); err != nil {
			item.finish(d.Completed(), apperr.New(apperr.KindNetwork, "download "+rawURL, err))
			return
		}
		if err := checkLength(d.Completed(), d.Resp.ContentLength); err != nil {
			item.finish(d.Completed(), apperr.New(apperr.KindNetwork, "download "+rawURL, err))
			return
		}
		if err := moveFile(staging, item.SavePath()); err != nil {
			item.finish(d.Completed(), err)
			return
		}
		item.finish(d.Completed(), nil)
	}()

	return started
}

// start issues the request and returns once response headers have arrived.
// Empty and non-2xx responses never start a transfer.
func (c *Context) start(ctx context.Context, staging, rawURL string) (*downloader.Downloader, error) {
	cfg := downloader.Config{HttpClient: *c.session.Client()}

	d, err := downloader.DownloadWithConfigAndContext(ctx, staging, rawURL, cfg, downloader.NoResume)
	if err != nil {
		return nil, apperr.New(apperr.KindNetwork, "request "+rawURL, err)
	}

	err = checkStatus(d.Resp)
	if err == nil && d.Resp.ContentLength == 0 {
		err = errors.New("server sent an empty body")
	}
	if err != nil {
		_ = d.Close()
		_ = os.Remove(staging)
		return nil, apperr.New(apperr.KindNetwork, "request "+rawURL, err)
	}
	return d, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("server answered %s", resp.Status)
	}
	return nil
}

// checkLength rejects empty bodies and bodies shorter or longer than the
// announced Content-Length (-1 when unknown)
func checkLength(written, announced int64) error {
	if written == 0 {
		return errors.New("no data received")
	}
	if announced >= 0 && written != announced {
		return errors.Errorf("received %d of %d bytes", written, announced)
	}
	return nil
}

// Destroy aborts any running transfer and releases the window, the session
// and the staging directory. It is safe to call more than once.
func (c *Context) Destroy() {
	c.destroy.Do(func() {
		c.cancel()
		c.session.Close()
		if c.window != nil {
			w := c.window
			fyne.Do(w.Close)
		}
		if err := os.RemoveAll(c.staging); err != nil {
			c.log.Debug("Failed to remove staging directory %s: %v", c.staging, err)
		}
	})
}

// mergeContexts returns a context cancelled when either parent is done
func mergeContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// moveFile renames src to dst, copying when they are on different devices
func moveFile(src, dst string) error {
	if dst == "" {
		return errors.New("no save path assigned")
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying to %s", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}
	return os.Remove(src)
}
