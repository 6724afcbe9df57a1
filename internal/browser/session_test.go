package browser

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
)

func TestSessionSetProxyRoutesRequests(t *testing.T) {
	var proxiedHost string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxiedHost = r.URL.Host
		fmt.Fprint(w, "via proxy")
	}))
	defer proxy.Close()

	session, err := NewSession("download:test")
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, <-session.SetProxy(proxy.Listener.Addr().String()))

	resp, err := session.Client().Get("http://images.example.invalid/cat.png")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "via proxy", string(body))
	require.Equal(t, "images.example.invalid", proxiedHost)
}

func TestSessionSetProxyInvalidKeepsPrevious(t *testing.T) {
	session, err := NewSession("download:test")
	require.NoError(t, err)

	require.NoError(t, <-session.SetProxy("foopy:80"))

	err = <-session.SetProxy("socks4://nope:1")
	require.Error(t, err)
	require.True(t, apperr.IsKind(err, apperr.KindProxy))

	u, err := session.proxyFor(httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "foopy:80", u.Host)
}

func TestSessionsDoNotShareCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "secret", Path: "/"})
			return
		}
		if c, err := r.Cookie("token"); err == nil {
			fmt.Fprint(w, c.Value)
		}
	}))
	defer server.Close()

	first, err := NewSession("download:a")
	require.NoError(t, err)
	second, err := NewSession("download:b")
	require.NoError(t, err)
	require.Equal(t, "download:a", first.Partition())

	get := func(s *Session, path string) string {
		resp, err := s.Client().Get(server.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	get(first, "/login")
	require.Equal(t, "secret", get(first, "/check"))
	require.Equal(t, "", get(second, "/check"))
}
