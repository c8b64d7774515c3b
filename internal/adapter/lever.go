package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avelichko/jobsift/internal/model"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// leverCategories represents the categories object in a Lever posting.
type leverCategories struct {
	Location string `json:"location"`
}

// leverPosting represents a single posting in the Lever API response.
type leverPosting struct {
	Text             string          `json:"text"`
	Description      string          `json:"description"`
	DescriptionPlain string          `json:"descriptionPlain"`
	Categories       leverCategories `json:"categories"`
	HostedURL        string          `json:"hostedUrl"`
	ApplyURL         string          `json:"applyUrl"`
}

// LeverAdapter fetches postings from a Lever-style public postings API.
// Titles outside the taxonomy are rejected at the boundary; entries missing
// a title or URL are dropped.
type LeverAdapter struct {
	slug         string
	filter       model.TitleFilter
	userAgent    string
	excerptLimit int
	client       *http.Client
}

// NewLeverAdapter creates a new adapter for a Lever board. excerptLimit caps
// the stored description excerpt.
func NewLeverAdapter(slug string, filter model.TitleFilter, userAgent string, excerptLimit int, client *http.Client) *LeverAdapter {
	return &LeverAdapter{
		slug:         slug,
		filter:       filter,
		userAgent:    userAgent,
		excerptLimit: excerptLimit,
		client:       client,
	}
}

// Fetch retrieves the postings list and normalizes it into Postings. The
// plain-text description is preferred; the markup variant is stripped to
// text before the excerpt cap is applied.
func (a *LeverAdapter) Fetch(ctx context.Context) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s?mode=json", leverBaseURL, a.slug)

	var leverPostings []leverPosting
	if err := getJSON(ctx, a.client, url, a.userAgent, &leverPostings); err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", a.slug, err)
	}

	postings := make([]model.Posting, 0, len(leverPostings))
	for _, lp := range leverPostings {
		postingURL := lp.HostedURL
		if postingURL == "" {
			postingURL = lp.ApplyURL
		}
		title := strings.TrimSpace(lp.Text)
		postingURL = strings.TrimSpace(postingURL)
		if title == "" || postingURL == "" {
			continue
		}
		if !a.filter.Accept(title) {
			continue
		}

		desc := lp.DescriptionPlain
		if desc == "" {
			desc = extractText(lp.Description)
		}

		postings = append(postings, model.Posting{
			Source:   "lever",
			Company:  a.slug,
			Title:    title,
			URL:      postingURL,
			Location: strings.TrimSpace(lp.Categories.Location),
			Desc:     truncate(desc, a.excerptLimit),
		})
	}

	return postings, nil
}

var _ model.SourceFetcher = (*LeverAdapter)(nil)
