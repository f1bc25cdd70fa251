// Package exchange is the BingX spot signed-REST client: it signs query
// parameters with HMAC-SHA256, dispatches GET/POST/PUT, and decodes the
// JSON (or text/plain-encoded JSON) response body. It never panics or
// returns a Go error for exchange/network failures — those are normalized
// into a status string, exactly like the source system's _send_request.
//
// Grounded on the teacher's hand-rolled okx_trader.go sign/doRequest pair
// (raw *http.Client, manual HMAC header injection, JSON envelope decode),
// adapted from OKX's prehash-string/base64/header scheme to BingX's
// sorted-query-string/hex/URL-appended scheme (SPEC_FULL.md §4.1/§6).
package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"bingxgrid/logger"
)

// Client is a signed BingX spot REST client. A single instance is shared by
// all symbol tasks; safety is delegated to the underlying *http.Client.
type Client struct {
	baseURL   string
	apiKey    string
	secretKey string
	http      *http.Client
}

// NewClient builds a client with an elevated idle-connection pool, since
// many symbol goroutines share it concurrently (SPEC_FULL.md §5).
func NewClient(baseURL, apiKey, secretKey string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		secretKey: secretKey,
		http:      &http.Client{Transport: transport, Timeout: 15 * time.Second},
	}
}

// Sign computes the lowercase-hex HMAC-SHA256 signature over the canonical
// "k=v&k=v" string built from params sorted by key (ASCII order). Exposed
// for the signature-round-trip property test (SPEC_FULL.md §8, invariant 2).
func Sign(secretKey string, params map[string]string) (canonical, signature string) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	canonical = strings.Join(parts, "&")

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(canonical))
	return canonical, hex.EncodeToString(mac.Sum(nil))
}

// Request signs params, dispatches method against endpoint, and returns the
// decoded JSON payload plus a human status string ("OK" on success). It
// never returns a Go error for request-side failures; callers that need to
// distinguish success check status == "OK".
func (c *Client) Request(ctx context.Context, method, endpoint string, params map[string]string) (json.RawMessage, string) {
	all := make(map[string]string, len(params)+1)
	for k, v := range params {
		all[k] = v
	}
	all["timestamp"] = strconv.FormatInt(time.Now().UnixMilli(), 10)

	canonical, signature := Sign(c.secretKey, all)
	url := fmt.Sprintf("%s%s?%s&signature=%s", c.baseURL, endpoint, canonical, signature)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Sprintf("failed to build request: %v", err)
	}
	req.Header.Set("X-BX-APIKEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Sprintf("network error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Sprintf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Sprintf("status %d: %s", resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "application/json"):
		// body already is JSON bytes
	case strings.Contains(contentType, "text/plain"):
		var asString string
		if err := json.Unmarshal(body, &asString); err == nil {
			body = []byte(asString)
		}
	default:
		return nil, fmt.Sprintf("unexpected content-type: %s", contentType)
	}

	if !json.Valid(body) {
		return nil, "invalid JSON in response body"
	}

	logger.Debugf("exchange %s %s -> %d", method, endpoint, resp.StatusCode)
	return json.RawMessage(body), "OK"
}
