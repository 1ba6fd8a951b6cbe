// Package memberdir resolves club names through the federation's member
// directory HTTP API.
package memberdir

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type clubPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResolveName looks up the club's display name. An unknown club is not an
// error; it reports found=false.
func (c *Client) ResolveName(ctx context.Context, clubID string) (string, bool, error) {
	endpoint := c.baseURL + "/v1/clubs/" + url.PathEscape(clubID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, crerr.Wrap(err, "build member directory request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, crerr.Wrap(err, "call member directory")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", false, crerr.Newf("member directory returned status %d for club %s", resp.StatusCode, clubID)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", false, crerr.Wrap(err, "read member directory response")
	}

	var payload clubPayload
	if err := jsoniter.Unmarshal(body, &payload); err != nil {
		return "", false, crerr.Wrap(err, "decode club payload")
	}

	return payload.Name, payload.Name != "", nil
}
