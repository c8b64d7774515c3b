package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/avelichko/jobsift/internal/model"
)

// getJSON performs a board API GET and decodes the JSON response into dst.
// A non-200 status, a non-JSON content type, or an undecodable body is a
// *model.FetchError.
func getJSON(ctx context.Context, client *http.Client, url, userAgent string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.FetchError{URL: url, Status: resp.StatusCode}
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(strings.ToLower(ct), "json") {
		return &model.FetchError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("content type %q is not JSON", ct)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &model.FetchError{URL: url, Status: resp.StatusCode, Err: err}
	}
	return nil
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities (no-op on already-plain text), strips all
// tags, then collapses whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// truncate caps s at n bytes, backing up to a rune boundary so the cut
// never splits a multi-byte character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
