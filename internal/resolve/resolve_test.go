package resolve

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelichko/jobsift/internal/model"
)

func newTestRunner(client *http.Client, limit int, timeout time.Duration) *Runner {
	return NewRunner(newTestFetcher(client), limit, timeout, discardLogger())
}

func TestRun_ResolvesTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<a href="https://boards.greenhouse.io/acme/jobs/1">Apply</a>
			<a href="https://www.acme.com">Acme</a>
			<a href="https://www.linkedin.com/company/acme-inc">LinkedIn</a>
		</body></html>`)
	}))
	defer srv.Close()

	runner := newTestRunner(srv.Client(), 4, time.Second)
	results := runner.Run(context.Background(), []model.Target{
		{ID: "a1b2c3d4e5f6", URL: srv.URL + "/jobs/1"},
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	e := results[0]
	if e.ID != "a1b2c3d4e5f6" {
		t.Errorf("ID = %q, want a1b2c3d4e5f6", e.ID)
	}
	if e.ResolvedURL != "https://www.acme.com" {
		t.Errorf("ResolvedURL = %q, want https://www.acme.com", e.ResolvedURL)
	}
	if e.LinkedInURL != "https://www.linkedin.com/company/acme-inc" {
		t.Errorf("LinkedInURL = %q", e.LinkedInURL)
	}
	if !e.DomainMatch {
		t.Error("expected DomainMatch to be true")
	}
	if e.Issues != "" {
		t.Errorf("Issues = %q, want none", e.Issues)
	}
	if e.CheckedAt.IsZero() {
		t.Error("CheckedAt not set")
	}
}

func TestRun_FlagsMissingLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<a href="https://boards.greenhouse.io/acme">All jobs</a>
			<a href="https://twitter.com/acme">Twitter</a>
		</body></html>`)
	}))
	defer srv.Close()

	runner := newTestRunner(srv.Client(), 4, time.Second)
	results := runner.Run(context.Background(), []model.Target{
		{ID: "t1", URL: srv.URL},
	})

	e := results[0]
	if e.Issues != "no_homepage;no_linkedin" {
		t.Errorf("Issues = %q, want no_homepage;no_linkedin", e.Issues)
	}
	if e.ResolvedURL != "" || e.LinkedInURL != "" {
		t.Errorf("expected no links, got %q / %q", e.ResolvedURL, e.LinkedInURL)
	}
	if e.DomainMatch {
		t.Error("expected DomainMatch to be false")
	}
}

func TestRun_FlagsPartiallyMissingLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `Careers at https://careers.initech.com and nothing else.`)
	}))
	defer srv.Close()

	runner := newTestRunner(srv.Client(), 4, time.Second)
	results := runner.Run(context.Background(), []model.Target{
		{ID: "t1", URL: srv.URL},
	})

	e := results[0]
	if e.Issues != "no_linkedin" {
		t.Errorf("Issues = %q, want no_linkedin", e.Issues)
	}
	if e.ResolvedURL != "https://careers.initech.com" {
		t.Errorf("ResolvedURL = %q", e.ResolvedURL)
	}
}

func TestRun_FetchFailureFlagsNoHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	runner := newTestRunner(srv.Client(), 4, time.Second)
	results := runner.Run(context.Background(), []model.Target{
		{ID: "t1", URL: srv.URL},
	})

	e := results[0]
	if e.Issues != "no_html" {
		t.Errorf("Issues = %q, want no_html", e.Issues)
	}
	if e.ResolvedURL != "" || e.LinkedInURL != "" || e.DomainMatch {
		t.Errorf("expected empty enrichment, got %+v", e)
	}
}

func TestRun_ResultsInTargetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(100 * time.Millisecond)
		}
		io.WriteString(w, `<a href="https://www.acme.com">Acme</a>`)
	}))
	defer srv.Close()

	runner := newTestRunner(srv.Client(), 4, time.Second)
	results := runner.Run(context.Background(), []model.Target{
		{ID: "slow-target", URL: srv.URL + "/slow"},
		{ID: "fast-target", URL: srv.URL + "/fast"},
	})

	if results[0].ID != "slow-target" || results[1].ID != "fast-target" {
		t.Errorf("results out of target order: %q, %q", results[0].ID, results[1].ID)
	}
}

func TestRun_PerTargetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		io.WriteString(w, `<a href="https://www.acme.com">Acme</a>`)
	}))
	defer srv.Close()

	runner := newTestRunner(srv.Client(), 4, 50*time.Millisecond)
	results := runner.Run(context.Background(), []model.Target{
		{ID: "t1", URL: srv.URL},
	})

	if results[0].Issues != "no_html" {
		t.Errorf("Issues = %q, want no_html", results[0].Issues)
	}
}
