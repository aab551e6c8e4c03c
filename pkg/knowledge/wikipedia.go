package knowledge

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// defaultBaseURL is the MediaWiki action API of the Portuguese
	// Wikipedia, matching the language the assistant answers in.
	defaultBaseURL = "https://pt.wikipedia.org/w/api.php"

	lookupTimeout = 2 * time.Second
	maxExtractLen = 800
	sourceTag     = "[WIKIPEDIA] "

	// minQueryLen guards against wasted calls on trivial input.
	minQueryLen = 5

	cacheTTL = 30 * time.Minute
)

// boilerplate phrases stripped from transcribed exam questions before
// they are used as an encyclopedia search term. Longer phrases first so
// substrings do not shadow them.
var boilerplate = []string{
	"julgue o item a seguir",
	"julgue o item seguinte",
	"julgue o item",
	"julgue os itens",
	"no que se refere a",
	"a respeito de",
	"acerca de",
	"com base no texto",
	"julgue",
	"item",
}

// Client looks up introductory summaries on a MediaWiki instance.
// Lookups fail open: any transport or decoding problem yields an empty
// context string, never an error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	cache      sync.Map
}

type cachedItem struct {
	extract   string
	expiresAt time.Time
}

func NewClient(baseURL string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
		logger: logger,
	}
}

// CleanQuery strips known exam boilerplate from a transcribed question,
// leaving the term worth searching for.
func CleanQuery(query string) string {
	cleaned := query
	for _, phrase := range boilerplate {
		for {
			idx := strings.Index(strings.ToLower(cleaned), phrase)
			if idx < 0 {
				break
			}
			cleaned = cleaned[:idx] + cleaned[idx+len(phrase):]
		}
	}
	cleaned = strings.Trim(cleaned, " :.,;-")
	return strings.TrimSpace(cleaned)
}

// Lookup returns a tagged introduction extract for the query, or ""
// when the query is trivial, the page does not exist, or the call
// fails. It never returns an error.
func (c *Client) Lookup(ctx context.Context, query string) string {
	cleaned := CleanQuery(query)
	if utf8.RuneCountInString(cleaned) < minQueryLen {
		return ""
	}

	if val, ok := c.cache.Load(cleaned); ok {
		item := val.(cachedItem)
		if time.Now().Before(item.expiresAt) {
			return item.extract
		}
		c.cache.Delete(cleaned)
	}

	extract := c.fetch(ctx, cleaned)
	c.cache.Store(cleaned, cachedItem{extract: extract, expiresAt: time.Now().Add(cacheTTL)})
	return extract
}

func (c *Client) fetch(ctx context.Context, term string) string {
	params := url.Values{}
	params.Add("action", "query")
	params.Add("format", "json")
	params.Add("prop", "extracts")
	params.Add("exintro", "1")
	params.Add("explaintext", "1")
	params.Add("redirects", "1")
	params.Add("titles", term)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[WIKIPEDIA] lookup failed for %q: %v", term, err)
		}
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var result struct {
		Query struct {
			Pages map[string]struct {
				Missing *string `json:"missing"`
				Extract string  `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return ""
	}

	for id, page := range result.Query.Pages {
		if id == "-1" || page.Missing != nil {
			continue
		}
		extract := strings.TrimSpace(page.Extract)
		if extract == "" {
			continue
		}
		if runes := []rune(extract); len(runes) > maxExtractLen {
			extract = string(runes[:maxExtractLen])
		}
		return sourceTag + extract
	}
	return ""
}
