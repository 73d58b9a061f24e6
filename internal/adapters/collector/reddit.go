package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pumpScout/internal/domain"
	"pumpScout/internal/ports"
)

const (
	redditSearchURL  = "https://www.reddit.com/search.json"
	defaultUserAgent = "pumpScout/1.0 (signal collector)"
	defaultPostLimit = 100
	// Comments tend to indicate stronger engagement than a passive upvote.
	commentWeight = 2.0
)

// Reddit collects social signals from Reddit's public search API.
// No authentication is required for read-only search.
type Reddit struct {
	httpClient *http.Client
	userAgent  string
	postLimit  int
	logger     ports.Logger
}

// RedditConfig holds configuration for the Reddit collector.
type RedditConfig struct {
	HTTPTimeout time.Duration
	UserAgent   string
	PostLimit   int
	Logger      ports.Logger
}

// NewReddit creates a Reddit signal collector.
func NewReddit(cfg RedditConfig) (*Reddit, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Reddit collector")
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.PostLimit <= 0 || cfg.PostLimit > 100 {
		cfg.PostLimit = defaultPostLimit
	}

	return &Reddit{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		userAgent:  cfg.UserAgent,
		postLimit:  cfg.PostLimit,
		logger:     cfg.Logger,
	}, nil
}

// Name identifies this collector in logs and signal records.
func (r *Reddit) Name() string { return "reddit" }

// redditListing mirrors the subset of Reddit's search response we read.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Score       float64 `json:"score"`
	NumComments float64 `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Collect searches recent posts matching any of the keywords and returns them
// as signals. The keywords are OR-joined into a single query to stay within
// rate limits.
func (r *Reddit) Collect(ctx context.Context, keywords []string) ([]domain.Signal, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	query := strings.Join(keywords, " OR ")
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "new")
	params.Set("limit", fmt.Sprintf("%d", r.postLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, redditSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reddit search request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit search request failed: %w: %w", ports.ErrCollectorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("reddit search rate limited: %w", ports.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit search returned status %d: %w", resp.StatusCode, ports.ErrCollectorUnavailable)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode reddit search response: %w", err)
	}

	signals := make([]domain.Signal, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		text := post.Title
		if post.SelfText != "" {
			text = text + "\n" + post.SelfText
		}
		signals = append(signals, domain.Signal{
			Source:          r.Name(),
			Text:            text,
			Timestamp:       time.Unix(int64(post.CreatedUTC), 0).UTC(),
			EngagementScore: post.Score + commentWeight*post.NumComments,
		})
	}

	r.logger.Debug(ctx, "Reddit signals collected", map[string]interface{}{"query": query, "count": len(signals)})
	return signals, nil
}
