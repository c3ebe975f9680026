package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Doer is the minimal HTTP client interface used across packages.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UserAgent identifies folio on outbound requests.
const UserAgent = "folio/1.0 (+academic portfolio citation tool)"

// MaxBody caps how much of a response body Get will read.
const MaxBody = 8 << 20

// DefaultClient is used when callers pass a nil Doer.
var DefaultClient Doer = &http.Client{Timeout: 10 * time.Second}

// SetUA sets the folio User-Agent header on the request.
func SetUA(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", UserAgent)
	}
}

// Get fetches url and returns the body and Content-Type. Any status other
// than 200 is an error carrying the status code and a snippet of the body.
func Get(ctx context.Context, c Doer, url, accept string) ([]byte, string, error) {
	if c == nil {
		c = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	SetUA(req)
	resp, err := c.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, "", fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody))
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}
