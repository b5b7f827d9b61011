package skills

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"aura/internal/executor"
	"aura/internal/logging"
	"aura/internal/session"

	"golang.org/x/net/html"
)

const resultsEndpoint = "https://html.duckduckgo.com/html/"

// WebSearch opens a web search in the browser and, when the network
// cooperates, includes the top result titles in the spoken response.
type WebSearch struct {
	searchURL string
	httpc     *http.Client
	memory    *session.Memory
}

// NewWebSearch creates the web search skill. searchURL is a template
// with %s replaced by the escaped query.
func NewWebSearch(searchURL string, memory *session.Memory) *WebSearch {
	return &WebSearch{
		searchURL: searchURL,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		memory:    memory,
	}
}

// Handle opens the search in the default browser.
func (s *WebSearch) Handle(ctx context.Context, args string) (*executor.Result, error) {
	query := strings.TrimSpace(args)
	if query == "" {
		return executor.Fail(executor.ErrValidationFailed, "Nothing to search for."), nil
	}

	target := fmt.Sprintf(s.searchURL, url.QueryEscape(query))
	if err := openBrowser(ctx, target); err != nil {
		return executor.Fail("", fmt.Sprintf("failed to open browser: %v", err)), nil
	}

	s.memory.SetContext("recent_entity", query)
	msg := fmt.Sprintf("Searching the web for %s", query)

	// Best effort; the search already opened either way.
	if titles := s.topResultTitles(ctx, query, 3); len(titles) > 0 {
		msg += ". Top results: " + strings.Join(titles, "; ")
	}
	return executor.Ok(msg), nil
}

// topResultTitles scrapes result anchor titles from the HTML-only
// search endpoint.
func (s *WebSearch) topResultTitles(ctx context.Context, query string, n int) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		resultsEndpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "aura/0.1")

	resp, err := s.httpc.Do(req)
	if err != nil {
		logging.Debug("result fetch failed", "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	return extractResultTitles(resp.Body, n)
}

// extractResultTitles walks the result page for anchors whose class
// marks them as result links, returning their text content.
func extractResultTitles(body io.Reader, n int) []string {
	var titles []string
	z := html.NewTokenizer(body)

	inResult := false
	var current strings.Builder
	for len(titles) < n {
		switch z.Next() {
		case html.ErrorToken:
			return titles
		case html.StartTagToken:
			tok := z.Token()
			if tok.Data == "a" {
				for _, attr := range tok.Attr {
					if attr.Key == "class" && strings.Contains(attr.Val, "result__a") {
						inResult = true
						current.Reset()
					}
				}
			}
		case html.TextToken:
			if inResult {
				current.WriteString(string(z.Text()))
			}
		case html.EndTagToken:
			if z.Token().Data == "a" && inResult {
				inResult = false
				if t := strings.TrimSpace(current.String()); t != "" {
					titles = append(titles, t)
				}
			}
		}
	}
	return titles
}

// Play opens a media search on YouTube.
type Play struct {
	memory *session.Memory
}

// NewPlay creates the media playback skill.
func NewPlay(memory *session.Memory) *Play {
	return &Play{memory: memory}
}

// Handle opens YouTube results for the requested media.
func (s *Play) Handle(ctx context.Context, args string) (*executor.Result, error) {
	query := strings.TrimSpace(args)
	if query == "" {
		return executor.Fail(executor.ErrValidationFailed, "Nothing to play."), nil
	}

	target := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
	if err := openBrowser(ctx, target); err != nil {
		return executor.Fail("", fmt.Sprintf("failed to open browser: %v", err)), nil
	}
	s.memory.SetContext("recent_entity", query)
	return executor.Ok(fmt.Sprintf("Playing %s on YouTube", query)), nil
}

// openBrowser opens a URL with the platform opener.
func openBrowser(ctx context.Context, target string) error {
	for _, opener := range []string{"xdg-open", "open"} {
		if _, err := exec.LookPath(opener); err == nil {
			return exec.CommandContext(ctx, opener, target).Start()
		}
	}
	return fmt.Errorf("no browser opener found")
}
