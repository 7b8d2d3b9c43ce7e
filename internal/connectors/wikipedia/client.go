// Package wikipedia implements a source connector over the MediaWiki action
// API. One configured article yields three renditions: plain text, HTML and
// the intro summary.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// DefaultAPIURL is the English Wikipedia action API endpoint.
const DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

// requestsPerSecond keeps the connector within the API etiquette limits.
const requestsPerSecond = 5

// client is a thin MediaWiki action API client.
type client struct {
	http    *http.Client
	apiURL  string
	limiter *rate.Limiter
}

func newClient() *client {
	return &client{
		http:    http.DefaultClient,
		apiURL:  DefaultAPIURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// page identifies a resolved article revision.
type page struct {
	Title      string
	RevisionID int64
}

// queryResponse covers the action=query shapes the connector reads.
type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Missing   string `json:"missing"`
			Extract   string `json:"extract"`
			Revisions []struct {
				RevID int64 `json:"revid"`
			} `json:"revisions"`
		} `json:"pages"`
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// parseResponse covers the action=parse shape.
type parseResponse struct {
	Parse struct {
		Text struct {
			HTML string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
}

// resolve finds the page behind title, returning its canonical title and
// latest revision. Missing pages fail rather than being guessed at.
func (c *client) resolve(ctx context.Context, title string) (*page, error) {
	var res queryResponse
	err := c.call(ctx, url.Values{
		"action":    {"query"},
		"titles":    {title},
		"prop":      {"revisions"},
		"rvprop":    {"ids"},
		"redirects": {"1"},
	}, &res)
	if err != nil {
		return nil, err
	}

	for id, p := range res.Query.Pages {
		if id == "-1" || len(p.Revisions) == 0 {
			continue
		}
		return &page{Title: p.Title, RevisionID: p.Revisions[0].RevID}, nil
	}
	return nil, fmt.Errorf("page %q not found", title)
}

// suggest returns the top search result for title.
func (c *client) suggest(ctx context.Context, title string) (string, error) {
	var res queryResponse
	err := c.call(ctx, url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {title},
		"srlimit":  {"1"},
	}, &res)
	if err != nil {
		return "", err
	}
	if len(res.Query.Search) == 0 {
		return "", fmt.Errorf("no suggestion for %q", title)
	}
	return res.Query.Search[0].Title, nil
}

// extract fetches the plain-text rendition, intro-only when summary is set.
func (c *client) extract(ctx context.Context, title string, summary bool) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"titles":      {title},
		"prop":        {"extracts"},
		"explaintext": {"1"},
		"redirects":   {"1"},
	}
	if summary {
		params.Set("exintro", "1")
	}

	var res queryResponse
	if err := c.call(ctx, params, &res); err != nil {
		return "", err
	}
	for id, p := range res.Query.Pages {
		if id == "-1" {
			continue
		}
		return p.Extract, nil
	}
	return "", fmt.Errorf("no extract for %q", title)
}

// html fetches the parsed HTML rendition.
func (c *client) html(ctx context.Context, title string) (string, error) {
	var res parseResponse
	err := c.call(ctx, url.Values{
		"action":    {"parse"},
		"page":      {title},
		"prop":      {"text"},
		"redirects": {"1"},
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Parse.Text.HTML == "" {
		return "", fmt.Errorf("no html for %q", title)
	}
	return res.Parse.Text.HTML, nil
}

// call performs one rate-limited API request and decodes the JSON response.
func (c *client) call(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("wikipedia api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding wikipedia response: %w", err)
	}
	return nil
}
