package websearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"agentrag/internal/domain"
)

const defaultBaseURL = "https://api.duckduckgo.com"

// DuckDuckGo queries the DuckDuckGo answer API and flattens its response
// into search snippets. It implements domain.WebSearcher.
type DuckDuckGo struct {
	client *resty.Client
}

// Config configures the search client.
type Config struct {
	// BaseURL overrides the DuckDuckGo endpoint, used by tests.
	BaseURL string
	Timeout time.Duration
}

func NewDuckDuckGo(cfg Config) *DuckDuckGo {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &DuckDuckGo{client: client}
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Search returns up to maxResults snippets in provider order.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchSnippet, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("websearch: invalid max results %d", maxResults)
	}
	var out ddgResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           query,
			"format":      "json",
			"no_redirect": "1",
			"no_html":     "1",
		}).
		SetResult(&out).
		// the answer API labels its JSON as x-javascript
		ForceContentType("application/json").
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("websearch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("websearch: %s", resp.Status())
	}

	snippets := make([]domain.SearchSnippet, 0, maxResults)
	if out.AbstractText != "" {
		snippets = append(snippets, domain.SearchSnippet{
			Title:   out.Heading,
			Link:    out.AbstractURL,
			Snippet: out.AbstractText,
		})
	}
	snippets = appendTopics(snippets, out.RelatedTopics, maxResults)
	if len(snippets) > maxResults {
		snippets = snippets[:maxResults]
	}
	return snippets, nil
}

// appendTopics walks related topics depth-first; grouped topics nest one
// level deep.
func appendTopics(snippets []domain.SearchSnippet, topics []ddgTopic, maxResults int) []domain.SearchSnippet {
	for _, t := range topics {
		if len(snippets) >= maxResults {
			break
		}
		if len(t.Topics) > 0 {
			snippets = appendTopics(snippets, t.Topics, maxResults)
			continue
		}
		if t.Text == "" {
			continue
		}
		snippets = append(snippets, domain.SearchSnippet{
			Title:   topicTitle(t.Text),
			Link:    t.FirstURL,
			Snippet: t.Text,
		})
	}
	return snippets
}

// topicTitle uses the leading clause of the topic text as a title.
func topicTitle(text string) string {
	if i := strings.Index(text, " - "); i > 0 {
		return text[:i]
	}
	if i := strings.IndexAny(text, ".!?"); i > 0 && i < 80 {
		return text[:i]
	}
	return text
}
