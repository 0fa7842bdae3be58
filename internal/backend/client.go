// Package backend is the console's gateway to the orchestration backend's
// JSON REST API. Every call is normalized into a Response regardless of
// backend quirks: call sites branch on Status instead of error types, and
// authentication expiry is handled once inside the HTTP wrapper.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edvin/backupdesk/internal/metrics"
)

const basePath = "/api/v1/"

// sessionHeader carries the session token on authenticated requests.
const sessionHeader = "X-Session-Token"

// TokenSource supplies the stored session token and is cleared when the
// backend rejects it with a 401. The zero token means unauthenticated.
type TokenSource interface {
	Token() string
	Clear() error
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, tokens TokenSource, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// do performs one backend call and normalizes the result. It never returns
// an error: transport failures surface as status 500 with the operation's
// generic message, and a 401 clears the stored session as a side effect so
// no call site needs to special-case authentication expiry.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, fallback string) Response {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			c.logger.Error().Err(err).Str("path", path).Msg("marshal request")
			return Response{Status: http.StatusInternalServerError, Detail: fallback}
		}
	}

	u := c.baseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(bodyBytes))
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("create request")
		return Response{Status: http.StatusInternalServerError, Detail: fallback}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(sessionHeader, token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		metrics.ObserveBackendRequest(path, http.StatusInternalServerError, time.Since(start))
		return Response{Status: http.StatusInternalServerError, Detail: fallback}
	}
	defer resp.Body.Close()
	metrics.ObserveBackendRequest(path, resp.StatusCode, time.Since(start))

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		env = envelope{}
	}

	out := Response{
		Status:  resp.StatusCode,
		Message: env.Message,
		Detail:  env.Detail,
		Data:    env.Data,
	}
	if !out.OK() && out.Detail == "" && out.Message == "" {
		out.Detail = fallback
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Error().Err(err).Msg("clear expired session")
		} else {
			c.logger.Info().Str("path", path).Msg("session expired, cleared stored token")
		}
	}

	return out
}

// unwrapList decodes the named array every list endpoint nests under data.
// On a failed response, or when the key is absent, it leaves the target
// empty so views render zero rows instead of stale ones.
func unwrapList[T any](resp Response, key string) []T {
	if !resp.OK() || resp.Data == nil {
		return nil
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil
	}

	raw, ok := data[key]
	if !ok {
		return nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func queryOf(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(pairs[i], pairs[i+1])
	}
	return q
}

func itoa(id int64) string {
	return fmt.Sprintf("%d", id)
}
