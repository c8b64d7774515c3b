package resolve

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	linkRegex     = regexp.MustCompile(`(?i)https?://[^\s"'<>]+`)
	linkedinRegex = regexp.MustCompile(`(?i)^https?://(?:www\.)?linkedin\.com/company/[A-Za-z0-9\-_/]+`)
)

// knownHosts are posting platforms and social networks that never count as
// an employer's own site. Matching is exact on the lowercased host with a
// leading "www." stripped.
var knownHosts = map[string]struct{}{
	"boards.greenhouse.io": {},
	"greenhouse.io":        {},
	"jobs.lever.co":        {},
	"lever.co":             {},
	"linkedin.com":         {},
	"twitter.com":          {},
	"facebook.com":         {},
	"fb.com":               {},
	"instagram.com":        {},
	"youtube.com":          {},
	"tiktok.com":           {},
}

// ExtractLinks returns every absolute http(s) URL in body, deduplicated,
// in order of first appearance. The scan is lexical: links are recognized
// anywhere in the body, not just inside anchor tags.
func ExtractLinks(body string) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, l := range linkRegex.FindAllString(body, -1) {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		links = append(links, l)
	}
	return links
}

// NormHost extracts the lowercased hostname of a URL with a leading "www."
// removed. Unparseable URLs yield "".
func NormHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	h := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(h, "www.")
}

// Classify picks the employer links out of an ordered link list: the first
// link whose host is not a known platform, and the first link with a
// professional-network company-profile prefix.
func Classify(links []string) (homepage, linkedin string) {
	for _, l := range links {
		if linkedin == "" && linkedinRegex.MatchString(l) {
			linkedin = l
		}
		if homepage == "" {
			if h := NormHost(l); h != "" {
				if _, known := knownHosts[h]; !known {
					homepage = l
				}
			}
		}
		if homepage != "" && linkedin != "" {
			break
		}
	}
	return homepage, linkedin
}

// DomainMatch reports whether the resolved homepage looks like a real
// employer domain: host non-empty, not a known platform, and different
// from the posting page's host.
func DomainMatch(resolvedURL, postingURL string) bool {
	h := NormHost(resolvedURL)
	if h == "" {
		return false
	}
	if _, known := knownHosts[h]; known {
		return false
	}
	return h != NormHost(postingURL)
}
