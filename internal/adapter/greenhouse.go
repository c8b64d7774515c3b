package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avelichko/jobsift/internal/model"
)

const greenhouseBaseURL = "https://boards.greenhouse.io"

// greenhouseJob represents a single job in the Greenhouse board response.
type greenhouseJob struct {
	Title       string             `json:"title"`
	Location    greenhouseLocation `json:"location"`
	AbsoluteURL string             `json:"absolute_url"`
	URL         string             `json:"url"`
}

type greenhouseLocation struct {
	Name string `json:"name"`
}

// greenhouseResponse is the top-level Greenhouse board response.
type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// GreenhouseAdapter fetches postings from a Greenhouse-style public board.
// Titles outside the taxonomy are rejected at the boundary; entries missing
// a title or URL are dropped.
type GreenhouseAdapter struct {
	slug      string
	filter    model.TitleFilter
	userAgent string
	client    *http.Client
}

// NewGreenhouseAdapter creates a new adapter for a Greenhouse board.
func NewGreenhouseAdapter(slug string, filter model.TitleFilter, userAgent string, client *http.Client) *GreenhouseAdapter {
	return &GreenhouseAdapter{
		slug:      slug,
		filter:    filter,
		userAgent: userAgent,
		client:    client,
	}
}

// Fetch retrieves the board listing and normalizes it into Postings. The
// board publishes no description, so Desc stays empty.
func (a *GreenhouseAdapter) Fetch(ctx context.Context) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s.json", greenhouseBaseURL, a.slug)

	var ghResp greenhouseResponse
	if err := getJSON(ctx, a.client, url, a.userAgent, &ghResp); err != nil {
		return nil, fmt.Errorf("greenhouse fetch for %s: %w", a.slug, err)
	}

	postings := make([]model.Posting, 0, len(ghResp.Jobs))
	for _, gj := range ghResp.Jobs {
		postingURL := gj.AbsoluteURL
		if postingURL == "" {
			postingURL = gj.URL
		}
		title := strings.TrimSpace(gj.Title)
		postingURL = strings.TrimSpace(postingURL)
		if title == "" || postingURL == "" {
			continue
		}
		if !a.filter.Accept(title) {
			continue
		}

		postings = append(postings, model.Posting{
			Source:   "greenhouse",
			Company:  a.slug,
			Title:    title,
			URL:      postingURL,
			Location: strings.TrimSpace(gj.Location.Name),
		})
	}

	return postings, nil
}

var _ model.SourceFetcher = (*GreenhouseAdapter)(nil)
