package browser

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// DirectRule is the proxy rule that bypasses proxying
const DirectRule = "direct://"

var supportedProxySchemes = map[string]bool{
	"http":    true,
	"https":   true,
	"socks5":  true,
	"socks5h": true,
}

// ProxyConfig maps request schemes to proxy servers. A nil URL means a
// direct connection.
type ProxyConfig struct {
	perScheme map[string]*url.URL
	fallback  *url.URL
}

// ParseProxyRules parses a rule string of the form
//
//	[<scheme>=]<proxy>[,<proxy>...][;[<scheme>=]<proxy>...]
//
// for example "http=foopy:80;https=socks5://bar:1080" or "foopy:8080".
// Proxies without a scheme are HTTP proxies. Only the first proxy of each
// list is used.
func ParseProxyRules(rules string) (*ProxyConfig, error) {
	cfg := &ProxyConfig{perScheme: make(map[string]*url.URL)}

	for _, rule := range strings.Split(rules, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		scheme := ""
		list := rule
		if eq := strings.Index(rule, "="); eq >= 0 && !strings.Contains(rule[:eq], "://") {
			scheme = strings.ToLower(strings.TrimSpace(rule[:eq]))
			list = rule[eq+1:]
		}

		first := strings.TrimSpace(strings.Split(list, ",")[0])
		proxyURL, err := parseProxyServer(first)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid proxy rule %q", rule)
		}

		if scheme == "" {
			cfg.fallback = proxyURL
		} else {
			cfg.perScheme[scheme] = proxyURL
		}
	}

	return cfg, nil
}

func parseProxyServer(server string) (*url.URL, error) {
	if server == "" {
		return nil, errors.New("empty proxy server")
	}
	if strings.EqualFold(server, DirectRule) {
		return nil, nil
	}
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errors.Errorf("missing host in %q", server)
	}
	if !supportedProxySchemes[strings.ToLower(u.Scheme)] {
		return nil, errors.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	return u, nil
}

// ProxyFor returns the proxy for req, nil for a direct connection
func (c *ProxyConfig) ProxyFor(req *http.Request) (*url.URL, error) {
	if c == nil {
		return nil, nil
	}
	if u, ok := c.perScheme[req.URL.Scheme]; ok {
		return u, nil
	}
	return c.fallback, nil
}
