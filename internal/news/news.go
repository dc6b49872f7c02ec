package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dugout/internal/core"
)

// Window is the publication date range for a news query.
type Window struct {
	From time.Time
	To   time.Time
}

// CurrentMonthWindow returns the default window: the first day of
// now's calendar month through now.
func CurrentMonthWindow(now time.Time) Window {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{From: first, To: now}
}

func (w Window) String() string {
	return w.From.Format("2006-01-02") + " to " + w.To.Format("2006-01-02")
}

// Client queries the GNews search API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	pace    time.Duration
	sleep   func(time.Duration) // swapped out in tests
}

// NewClient creates a GNews client. pace is slept after every call as
// a crude fixed-rate limiter before the result is consumed.
func NewClient(baseURL, apiKey string, timeout, pace time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		pace:  pace,
		sleep: time.Sleep,
	}
}

// Search fetches up to maxResults articles matching query within the
// window. Absent response fields default to empty values.
func (c *Client) Search(ctx context.Context, query string, window Window, maxResults int) ([]core.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("from", window.From.Format("2006-01-02"))
	params.Set("to", window.To.Format("2006-01-02"))
	params.Set("max", strconv.Itoa(maxResults))
	params.Set("token", c.apiKey)

	fullURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news request failed with status: %d", resp.StatusCode)
	}

	// Respect upstream rate limits
	if c.pace > 0 {
		c.sleep(c.pace)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Content     string `json:"content"`
			PublishedAt string `json:"publishedAt"`
			Author      string `json:"author"`
			URL         string `json:"url"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	articles := make([]core.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		published, _ := time.Parse(time.RFC3339, item.PublishedAt)
		articles = append(articles, core.Article{
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			PublishedAt: published,
			Author:      item.Author,
			URL:         item.URL,
			SourceName:  item.Source.Name,
		})
	}
	return articles, nil
}
