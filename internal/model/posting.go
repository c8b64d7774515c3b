package model

import (
	"context"
	"time"
)

// Posting is the unified representation of a job posting from any source.
type Posting struct {
	ID       string // content fingerprint (12 hex chars), set during dedup
	Source   string // source kind: "greenhouse" or "lever"
	Company  string // employer slug the posting was fetched under
	Title    string
	URL      string
	Location string
	Desc     string // plain-text description excerpt, capped
	FitScore int    // 0..5, set by the scorer
}

// Target is one previously shipped posting selected for enrichment.
// Columns beyond ID and URL are carried through untouched.
type Target struct {
	ID       string
	Source   string
	Company  string
	Title    string
	URL      string
	Location string
	FitScore string
}

// Enrichment is the outcome of resolving one target's posting page.
type Enrichment struct {
	ID          string
	ResolvedURL string // first link pointing off the known posting platforms
	LinkedInURL string // first linkedin.com/company/... link on the page
	DomainMatch bool
	Issues      string // ";"-joined flags: no_html, no_homepage, no_linkedin
	CheckedAt   time.Time
}

// SourceFetcher fetches postings from one employer's board.
type SourceFetcher interface {
	Fetch(ctx context.Context) ([]Posting, error)
}

// RowSink delivers finished batches to the tabular sink.
type RowSink interface {
	PushRows(ctx context.Context, rows []Posting) error
	PushQA(ctx context.Context, rows []Enrichment) error
}

// TitleFilter decides whether a posting title belongs to the tracked roles.
type TitleFilter interface {
	Accept(title string) bool
}
