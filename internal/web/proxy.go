package web

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// sessionCookie holds the backend session token on the browser side. The
// cookie never reaches the backend; the proxy swaps it for the token
// header, keeping the token out of browser-visible response bodies only
// on the way in.
const sessionCookie = "backupdesk_session"

const sessionTokenHeader = "X-Session-Token"

// cookieLifetime matches the backend's session duration.
const cookieLifetime = 7 * 24 * time.Hour

func newBackendProxy(target *url.URL, tlsConfig *tls.Config, logger zerolog.Logger) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)

	if tlsConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsConfig
		proxy.Transport = transport
	}

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		if c, err := r.Cookie(sessionCookie); err == nil && r.Header.Get(sessionTokenHeader) == "" {
			r.Header.Set(sessionTokenHeader, c.Value)
		}
		// The backend has no use for browser cookies.
		r.Header.Del("Cookie")
	}

	proxy.ModifyResponse = func(resp *http.Response) error {
		switch {
		case isLogin(resp.Request) && resp.StatusCode < 300:
			return captureSessionCookie(resp)
		case resp.StatusCode == http.StatusUnauthorized:
			clearSessionCookie(resp)
		}
		return nil
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("backend proxy error")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"detail": "backend unavailable"})
	}

	return proxy
}

func isLogin(r *http.Request) bool {
	return r != nil && r.Method == http.MethodPost &&
		strings.HasSuffix(r.URL.Path, "/users/login")
}

// captureSessionCookie lifts the session token out of a successful login
// response into an HttpOnly cookie. The body passes through unchanged so
// non-browser clients still see the token.
func captureSessionCookie(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var envelope struct {
		Data struct {
			SessionToken string `json:"session_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data.SessionToken == "" {
		return nil
	}

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    envelope.Data.SessionToken,
		Path:     "/",
		MaxAge:   int(cookieLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	resp.Header.Add("Set-Cookie", cookie.String())
	return nil
}

func clearSessionCookie(resp *http.Response) {
	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	resp.Header.Add("Set-Cookie", cookie.String())
}
