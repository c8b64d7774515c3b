package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avelichko/jobsift/internal/model"
)

// Ensure Client implements model.RowSink.
var _ model.RowSink = (*Client)(nil)

// Client ships finished batches to the tabular-append webhook. Each delivery
// is a single POST; a non-2xx response is an error and is never retried.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a sink client for the given webhook endpoint.
func New(endpoint, userAgent string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
	}
}

// postingRow is the wire shape of one shipped posting.
type postingRow struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Company  string `json:"company"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Location string `json:"location"`
	FitScore int    `json:"fitscore"`
}

type rowsPayload struct {
	Rows []postingRow `json:"rows"`
	TS   int64        `json:"ts"`
}

// qaRow is the wire shape of one enrichment row.
type qaRow struct {
	ID                 string `json:"ID"`
	ResolvedCompanyURL string `json:"ResolvedCompanyURL"`
	LinkedInURL        string `json:"LinkedInURL"`
	DomainMatch        string `json:"DomainMatch"`
	Issues             string `json:"Issues"`
	CheckedAt          string `json:"CheckedAt"`
}

type qaPayload struct {
	Mode string  `json:"mode"`
	Rows []qaRow `json:"rows"`
	TS   int64   `json:"ts"`
}

const checkedAtLayout = "2006-01-02 15:04:05"

// PushRows posts the collected batch as {"rows": [...], "ts": <unix>}.
// An empty batch is logged and never posted.
func (c *Client) PushRows(ctx context.Context, rows []model.Posting) error {
	if len(rows) == 0 {
		c.logger.Info("no rows to ship, skipping delivery")
		return nil
	}

	payload := rowsPayload{
		Rows: make([]postingRow, 0, len(rows)),
		TS:   time.Now().Unix(),
	}
	for _, p := range rows {
		payload.Rows = append(payload.Rows, postingRow{
			ID:       p.ID,
			Source:   p.Source,
			Company:  p.Company,
			Title:    p.Title,
			URL:      p.URL,
			Location: p.Location,
			FitScore: p.FitScore,
		})
	}

	if err := c.post(ctx, payload); err != nil {
		return err
	}
	c.logger.Info("sink delivery complete", "rows", len(rows))
	return nil
}

// PushQA posts enrichment rows as {"mode": "qa", "rows": [...], "ts": <unix>}.
func (c *Client) PushQA(ctx context.Context, rows []model.Enrichment) error {
	payload := qaPayload{
		Mode: "qa",
		Rows: make([]qaRow, 0, len(rows)),
		TS:   time.Now().Unix(),
	}
	for _, e := range rows {
		match := "FALSE"
		if e.DomainMatch {
			match = "TRUE"
		}
		payload.Rows = append(payload.Rows, qaRow{
			ID:                 e.ID,
			ResolvedCompanyURL: e.ResolvedURL,
			LinkedInURL:        e.LinkedInURL,
			DomainMatch:        match,
			Issues:             e.Issues,
			CheckedAt:          e.CheckedAt.Format(checkedAtLayout),
		})
	}

	if err := c.post(ctx, payload); err != nil {
		return err
	}
	c.logger.Info("sink delivery complete", "mode", "qa", "rows", len(rows))
	return nil
}

func (c *Client) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sink payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to sink: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return fmt.Errorf("sink returned %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}
	return nil
}
