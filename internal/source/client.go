package source

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gridstats/internal"
	"gridstats/internal/config"
)

// Client scrapes a pro-football-reference style site. Requests are paced by
// a simple limiter and retried with backoff on throttling and server errors.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	pace       *pacer
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.SourceTimeoutMs) * time.Millisecond},
		pace:       newPacer(cfg.SourceRateLimitRPS),
	}
}

func (c *Client) Gamelogs(ctx context.Context, season int) ([]internal.GameRow, error) {
	ref := fmt.Sprintf("/years/%d/games.htm", season)
	doc, err := c.fetchDocument(ctx, ref)
	if err != nil {
		return nil, &internal.SourceError{Op: "gamelogs", Ref: ref, Err: err}
	}
	return parseSchedule(doc), nil
}

func (c *Client) GamelogStatistics(ctx context.Context, boxscoreRef string) ([]internal.RawRow, error) {
	doc, err := c.fetchDocument(ctx, boxscoreRef)
	if err != nil {
		return nil, &internal.SourceError{Op: "gamelog_statistics", Ref: boxscoreRef, Err: err}
	}
	rows := parseTeamStatistics(doc)
	if len(rows) == 0 {
		return nil, &internal.SourceError{Op: "gamelog_statistics", Ref: boxscoreRef, Err: fmt.Errorf("no team stat rows on page")}
	}
	return rows, nil
}

func (c *Client) GamelogMetadata(ctx context.Context, boxscoreRef string) (internal.RawRow, error) {
	doc, err := c.fetchDocument(ctx, boxscoreRef)
	if err != nil {
		return nil, &internal.SourceError{Op: "gamelog_metadata", Ref: boxscoreRef, Err: err}
	}
	return parseGameInfo(doc), nil
}

// fetchDocument GETs one page and parses it. The site wraps late tables in
// HTML comments, so comments are stripped before parsing.
func (c *Client) fetchDocument(ctx context.Context, ref string) (*goquery.Document, error) {
	target, err := c.resolveRef(ref)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= 4; attempt++ {
		c.pace.waitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.cfg.SourceUserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			if isRetryableStatus(resp.StatusCode) && attempt < 4 {
				backoff := time.Duration(500*(1<<(attempt-1))+rand.Intn(250)) * time.Millisecond
				time.Sleep(backoff)
				continue
			}
			return nil, lastErr
		}

		html := strings.ReplaceAll(string(body), "<!--", "")
		html = strings.ReplaceAll(html, "-->", "")
		return goquery.NewDocumentFromReader(strings.NewReader(html))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	return nil, lastErr
}

func (c *Client) resolveRef(ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	base, err := url.Parse(strings.TrimRight(c.cfg.SourceBaseURL, "/"))
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// pacer spaces requests so the site sees at most rps requests per second.
type pacer struct {
	mu    sync.Mutex
	next  time.Time
	every time.Duration
}

func newPacer(rps int) *pacer {
	if rps <= 0 {
		rps = 1
	}
	return &pacer{every: time.Second / time.Duration(rps)}
}

func (p *pacer) waitTurn() {
	p.mu.Lock()
	now := time.Now()
	turn := now
	if p.next.After(now) {
		turn = p.next
	}
	p.next = turn.Add(p.every)
	p.mu.Unlock()

	if sleep := time.Until(turn); sleep > 0 {
		time.Sleep(sleep)
	}
}
