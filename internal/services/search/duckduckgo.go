package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint, which needs no API key.
type DuckDuckGo struct {
	config *Config
	client *http.Client
}

func NewDuckDuckGo(config *Config) (*DuckDuckGo, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, &SearchError{Type: "config", Operation: "init", Message: err.Error()}
	}
	return &DuckDuckGo{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}, nil
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &SearchError{Type: "validation", Operation: "search", Message: "empty query"}
	}
	if maxResults <= 0 {
		return []Result{}, nil
	}

	searchURL := fmt.Sprintf("%s?q=%s", d.config.Endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &SearchError{Type: "network", Operation: "search", Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", d.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &SearchError{Type: "network", Operation: "search", Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Type: "provider", Operation: "search", Code: resp.StatusCode, Message: resp.Status}
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, d.config.MaxBodyBytes))
	if err != nil {
		return nil, &SearchError{Type: "parse", Operation: "search", Message: "failed to parse HTML", Cause: err}
	}
	return parseResults(doc, maxResults), nil
}

// parseResults walks result containers in document order.
func parseResults(doc *html.Node, maxResults int) []Result {
	results := []Result{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") && hasClass(n, "results_links") {
			if r := extractResult(n); r.URL != "" && r.Title != "" {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results
}

func extractResult(n *html.Node) Result {
	var r Result

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result__a"):
				r.URL = unwrapRedirect(attr(n, "href"))
				r.Title = textContent(n)
			case hasClass(n, "result__snippet"):
				r.Body = textContent(n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return r
}

// unwrapRedirect turns //duckduckgo.com/l/?uddg=<target> links into the target.
func unwrapRedirect(href string) string {
	if !strings.Contains(href, "duckduckgo.com/l/") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
