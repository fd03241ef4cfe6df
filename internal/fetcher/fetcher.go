// Package fetcher enriches problem submissions from their external link.
// When a submission carries a leetcode.com problem URL, the canonical title
// and slug are read from the page so typos in the submitted title can be
// surfaced to the client.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type LinkMetadata struct {
	Title string
	Slug  string
	URL   string
}

type Fetcher struct {
	http *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{http: &http.Client{Timeout: 15 * time.Second}}
}

var leetcodeProblemPath = regexp.MustCompile(`^/problems/([a-z0-9-]+)/?`)

// ParseProblemURL validates a leetcode problem link and extracts its slug.
func ParseProblemURL(raw string) (slug string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.ToLower(u.Host)
	if host != "leetcode.com" && host != "www.leetcode.com" {
		return "", fmt.Errorf("url host must be leetcode.com, got %s", u.Host)
	}

	m := leetcodeProblemPath.FindStringSubmatch(u.Path)
	if len(m) < 2 {
		return "", fmt.Errorf("url path is not a problem page (expected /problems/<slug>/)")
	}
	return m[1], nil
}

// Fetch loads the linked problem page and scrapes the canonical title.
// A page whose title cannot be located is not an error; the submission's own
// title simply stands.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, userAgent string) (*LinkMetadata, error) {
	slug, err := ParseProblemURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch problem page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from leetcode", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse problem page: %w", err)
	}

	title := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	// page titles look like "Two Sum - LeetCode"
	if i := strings.LastIndex(title, " - "); i > 0 {
		title = title[:i]
	}
	// numbered variant: "1. Two Sum"
	if m := regexp.MustCompile(`^\d+\.\s*`).FindString(title); m != "" {
		title = title[len(m):]
	}

	return &LinkMetadata{
		Title: title,
		Slug:  slug,
		URL:   fmt.Sprintf("https://leetcode.com/problems/%s/", slug),
	}, nil
}
