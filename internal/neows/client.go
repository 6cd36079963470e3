// Package neows is a client for the NASA NeoWs near-Earth-object feed.
package neows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"asteroid-tracker/internal/logging"
)

// DefaultEndpoint is the public NeoWs feed URL.
const DefaultEndpoint = "https://api.nasa.gov/neo/rest/v1/feed"

// ErrFeedStatus is returned for non-2xx feed responses.
var ErrFeedStatus = errors.New("neows: unexpected status")

// Client queries the feed endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates a client. A zero timeout means none.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Window returns the local-date feed window starting at now and spanning 24h.
func Window(now time.Time) (start, end string) {
	now = now.Local()
	return now.Format(time.DateOnly), now.Add(24 * time.Hour).Format(time.DateOnly)
}

// Feed fetches every record between start and end (YYYY-MM-DD).
func (c *Client) Feed(ctx context.Context, start, end string) ([]Record, error) {
	resp, err := c.fetch(ctx, start, end)
	if err != nil {
		return nil, err
	}
	recs := resp.Records()
	logging.FromContext(ctx).Debug("feed decoded",
		"element_count", resp.ElementCount, "records", len(recs), "start", start, "end", end)
	return recs, nil
}

// FeedResponse is the decoded feed payload.
type FeedResponse struct {
	ElementCount int
	// ByDate maps a YYYY-MM-DD key to raw records.
	ByDate map[string][]json.RawMessage
}

func (c *Client) fetch(ctx context.Context, start, end string) (*FeedResponse, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("neows: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("neows: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neows: request feed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("%w: %s", ErrFeedStatus, res.Status)
	}
	return DecodeFeed(res.Body)
}

// DecodeFeed parses a feed body. Only a body that is not a JSON object is an
// error; missing sections decode as empty.
func DecodeFeed(r io.Reader) (*FeedResponse, error) {
	var raw struct {
		ElementCount    json.RawMessage            `json:"element_count"`
		NearEarthObject map[string]json.RawMessage `json:"near_earth_objects"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("neows: decode feed: %w", err)
	}
	out := &FeedResponse{ByDate: make(map[string][]json.RawMessage)}
	if n := number(raw.ElementCount); n != nil {
		out.ElementCount = int(*n)
	}
	for date, day := range raw.NearEarthObject {
		var recs []json.RawMessage
		if err := json.Unmarshal(day, &recs); err != nil {
			continue
		}
		out.ByDate[date] = recs
	}
	return out, nil
}
