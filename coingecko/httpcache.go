package coingecko

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// diskCache is a RoundTripper that caches successful GET responses on
// disk, keyed by URL. Historical prices never change, so entries are kept
// forever; wiping the directory is the only eviction.
type diskCache struct {
	dir  string
	next http.RoundTripper
}

func newDiskCache(dir string) *diskCache {
	return &diskCache{dir: dir, next: http.DefaultTransport}
}

func (c *diskCache) path(url string) string {
	sum := sha1.Sum([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.next.RoundTrip(req)
	}

	path := c.path(req.URL.String())
	if body, err := os.ReadFile(path); err == nil {
		return &http.Response{
			Status:     "200 OK (cached)",
			StatusCode: http.StatusOK,
			Proto:      "HTTP/1.1",
			ProtoMajor: 1,
			ProtoMinor: 1,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(bytes.NewReader(body)),
			Request:    req,
		}, nil
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.dir, 0o755); err == nil {
		// a failed cache write is not an error, the response is intact
		_ = os.WriteFile(path, body, 0o644)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
