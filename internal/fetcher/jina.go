package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Jina fetches the plain-text rendering of a web page through the Jina
// reader proxy. It implements domain.Fetcher.
type Jina struct {
	prefix string
	client *resty.Client
}

// Config configures the reader fetcher.
type Config struct {
	// ReaderPrefix is prepended to the target URL, e.g. "https://r.jina.ai/".
	ReaderPrefix string
	Timeout      time.Duration
}

func NewJina(cfg Config) *Jina {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/plain").
		SetHeader("User-Agent", defaultUserAgent)
	return &Jina{
		prefix: strings.TrimRight(cfg.ReaderPrefix, "/") + "/",
		client: client,
	}
}

// Fetch returns the text content of the page at url.
func (j *Jina) Fetch(ctx context.Context, url string) (string, error) {
	full := j.prefix + strings.TrimLeft(url, "/")
	resp, err := j.client.R().SetContext(ctx).Get(full)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", full, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: %s", full, resp.Status())
	}
	return resp.String(), nil
}
