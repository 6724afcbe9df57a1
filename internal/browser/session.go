package browser

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
)

// UserAgent is sent with every request made through a session
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) ghetto-skype"

// Session is an isolated storage scope: cookies, connections and proxy
// settings are never shared with another session.
type Session struct {
	partition string
	client    *http.Client
	transport *http.Transport

	mu    sync.RWMutex
	proxy *ProxyConfig
}

// NewSession creates an in-memory session for partition
func NewSession(partition string) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}

	s := &Session{partition: partition}
	s.transport = http.DefaultTransport.(*http.Transport).Clone()
	s.transport.Proxy = s.proxyFor
	s.client = &http.Client{
		Transport: userAgentTransport{base: s.transport},
		Jar:       jar,
	}
	return s, nil
}

// Partition returns the partition name the session is bound to
func (s *Session) Partition() string {
	return s.partition
}

// Client returns the HTTP client bound to this session
func (s *Session) Client() *http.Client {
	return s.client
}

// SetProxy applies rules to every later request of this session before it
// returns. The channel reports whether the rules were valid; callers may
// ignore it. Invalid rules leave the previous configuration in place.
func (s *Session) SetProxy(rules string) <-chan error {
	result := make(chan error, 1)

	cfg, err := ParseProxyRules(rules)
	if err != nil {
		result <- apperr.New(apperr.KindProxy, "set proxy", err)
		return result
	}

	s.mu.Lock()
	s.proxy = cfg
	s.mu.Unlock()

	// Connections opened under the old configuration must not be reused
	s.transport.CloseIdleConnections()

	result <- nil
	return result
}

func (s *Session) proxyFor(req *http.Request) (*url.URL, error) {
	s.mu.RLock()
	cfg := s.proxy
	s.mu.RUnlock()

	if cfg == nil {
		return http.ProxyFromEnvironment(req)
	}
	return cfg.ProxyFor(req)
}

type userAgentTransport struct {
	base http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return t.base.RoundTrip(req)
}

// Close releases pooled connections
func (s *Session) Close() {
	s.transport.CloseIdleConnections()
}
