// Package wanikani implements the WaniKani API v2 client. It resolves a
// user's stored credential, issues authenticated requests, and maps raw
// payloads into domain records, caching derived results per user.
package wanikani

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crabigator/internal/domain"
	"crabigator/internal/metrics"
	"crabigator/internal/repository"
	"crabigator/internal/session"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Resource names consumed from the API.
const (
	resourceUser              = "user"
	resourceSummary           = "summary"
	resourceAssignments       = "assignments"
	resourceLevelProgressions = "level_progressions"
	resourceReviews           = "reviews"
)

// burnedStage is the terminal SRS stage label.
const burnedStage = "Burned"

// ClientConfig contains configuration for the WaniKani client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// MaxAssignmentPages bounds assignment pagination.
	MaxAssignmentPages int
}

// Client fetches WaniKani data for registered users.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	creds      repository.CredentialRepository
	cache      *session.Cache
	logger     *zap.Logger
	maxPages   int
}

// NewClient creates a new WaniKani client. Requests are rate limited to
// the API's 60 requests per minute budget.
func NewClient(
	cfg ClientConfig,
	creds repository.CredentialRepository,
	cache *session.Cache,
	logger *zap.Logger,
) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxPages := cfg.MaxAssignmentPages
	if maxPages <= 0 {
		maxPages = 50
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/60), 5),
		creds:      creds,
		cache:      cache,
		logger:     logger,
		maxPages:   maxPages,
	}
}

// fetchOptions narrows a resource fetch.
type fetchOptions struct {
	// updatedAfter is an ISO date; requested at midnight UTC.
	updatedAfter string
	// pageAfterID is the pagination cursor.
	pageAfterID string
}

// fetchResource issues one authenticated request. A missing credential is
// a precondition violation (domain.ErrNotRegistered); every non-200
// response folds into domain.ErrUnavailable.
func (c *Client) fetchResource(ctx context.Context, userID int64, resource string, opts fetchOptions) ([]byte, error) {
	cred, err := c.creds.Find(userID)
	if err != nil {
		return nil, fmt.Errorf("look up credential: %w", err)
	}
	if cred == nil {
		return nil, domain.ErrNotRegistered
	}

	reqURL, err := c.buildURL(resource, opts)
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cred.APIToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("WaniKani request failed",
			zap.String("resource", resource),
			zap.Error(err),
		)
		metrics.APIRequestsTotal.WithLabelValues(resource, "error").Inc()
		return nil, domain.ErrUnavailable
	}
	defer resp.Body.Close()

	metrics.APIRequestSeconds.Observe(time.Since(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("WaniKani returned non-200",
			zap.String("resource", resource),
			zap.Int("status", resp.StatusCode),
		)
		return nil, domain.ErrUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrUnavailable
	}

	return body, nil
}

func (c *Client) buildURL(resource string, opts fetchOptions) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u = u.JoinPath(resource)

	query := u.Query()
	if opts.updatedAfter != "" {
		query.Set("updated_after", opts.updatedAfter+"T00:00:00.000000Z")
	}
	if opts.pageAfterID != "" {
		query.Set("page_after_id", opts.pageAfterID)
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// FetchUserProfile fetches the user resource, maps it into a profile and
// caches the result.
func (c *Client) FetchUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	body, err := c.fetchResource(ctx, userID, resourceUser, fetchOptions{})
	if err != nil {
		return nil, err
	}

	var envelope userEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Warn("malformed user payload", zap.Error(err))
		return nil, domain.ErrUnavailable
	}

	profile := &domain.UserProfile{
		ID:              envelope.Data.ID,
		Username:        envelope.Data.Username,
		ProfileURL:      envelope.Data.ProfileURL,
		Level:           envelope.Data.Level,
		MaxLevel:        envelope.Data.Subscription.MaxLevelGranted,
		Subscribed:      envelope.Data.Subscribed,
		LastUpdate:      envelope.DataUpdatedAt,
		MemberSince:     envelope.Data.StartedAt,
		OnVacationSince: strOrEmpty(envelope.Data.CurrentVacationStartedAt),
	}

	c.cache.SetProfile(userID, profile)
	return profile, nil
}

// GetOrFetchProfile returns the cached profile when one exists, fetching
// otherwise. Used within a command chain to avoid a second user fetch.
func (c *Client) GetOrFetchProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	if profile, ok := c.cache.Profile(userID); ok {
		return profile, nil
	}
	return c.FetchUserProfile(ctx, userID)
}

// FetchSummary fetches the summary resource and caches the result.
// Reviews are split by the due-now rule: when the summary's update
// timestamp equals its next-review timestamp, the first review bucket is
// available right now and the rest are upcoming.
func (c *Client) FetchSummary(ctx context.Context, userID int64) (*domain.Summary, error) {
	body, err := c.fetchResource(ctx, userID, resourceSummary, fetchOptions{})
	if err != nil {
		return nil, err
	}

	var envelope summaryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Warn("malformed summary payload", zap.Error(err))
		return nil, domain.ErrUnavailable
	}

	summary := &domain.Summary{
		LastUpdate:       envelope.DataUpdatedAt,
		AvailableLessons: []int64{},
		AvailableReviews: []int64{},
		UpcomingReviews:  []int64{},
	}

	if len(envelope.Data.Lessons) > 0 {
		summary.AvailableLessons = envelope.Data.Lessons[0].SubjectIDs
	}

	start := 0
	if next := envelope.Data.NextReviewsAt; next != nil &&
		envelope.DataUpdatedAt == *next && len(envelope.Data.Reviews) > 0 {
		start = 1
		summary.AvailableReviews = envelope.Data.Reviews[0].SubjectIDs
	}
	for i := start; i < len(envelope.Data.Reviews); i++ {
		summary.UpcomingReviews = append(summary.UpcomingReviews, envelope.Data.Reviews[i].SubjectIDs...)
	}

	c.cache.SetSummary(userID, summary)
	return summary, nil
}

// FetchItemCounts paginates the assignments resource and tallies subject
// types plus burned items across all pages. Pagination stops when a page
// carries no next cursor, or at the defensive page bound.
func (c *Client) FetchItemCounts(ctx context.Context, userID int64) (domain.ItemCounts, error) {
	var counts domain.ItemCounts

	cursor := ""
	for page := 0; ; page++ {
		if page >= c.maxPages {
			c.logger.Warn("assignment pagination exceeded page bound",
				zap.Int64("user_id", userID),
				zap.Int("max_pages", c.maxPages),
			)
			break
		}

		body, err := c.fetchResource(ctx, userID, resourceAssignments, fetchOptions{pageAfterID: cursor})
		if err != nil {
			return domain.ItemCounts{}, err
		}

		var envelope assignmentsEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			c.logger.Warn("malformed assignments payload", zap.Error(err))
			return domain.ItemCounts{}, domain.ErrUnavailable
		}

		for _, item := range envelope.Data {
			switch item.Data.SubjectType {
			case "radical":
				counts.Radicals++
			case "kanji":
				counts.Kanji++
			case "vocabulary":
				counts.Vocabulary++
			}
			if item.Data.SRSStageName == burnedStage {
				counts.Burned++
			}
		}

		cursor = nextCursor(envelope.Pages.NextURL)
		if cursor == "" {
			break
		}
	}

	return counts, nil
}

// FetchReviewCount returns how many reviews the user completed since the
// given ISO date. The collection's total count is enough; no pages are
// walked.
func (c *Client) FetchReviewCount(ctx context.Context, userID int64, sinceDate string) (int, error) {
	body, err := c.fetchResource(ctx, userID, resourceReviews, fetchOptions{updatedAfter: sinceDate})
	if err != nil {
		return 0, err
	}

	var envelope reviewsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Warn("malformed reviews payload", zap.Error(err))
		return 0, domain.ErrUnavailable
	}

	return envelope.TotalCount, nil
}

// FetchLevelProgressions fetches the level history and records it on the
// cached profile when one is present.
func (c *Client) FetchLevelProgressions(ctx context.Context, userID int64) ([]domain.LevelProgression, error) {
	body, err := c.fetchResource(ctx, userID, resourceLevelProgressions, fetchOptions{})
	if err != nil {
		return nil, err
	}

	var envelope levelProgressionsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Warn("malformed level_progressions payload", zap.Error(err))
		return nil, domain.ErrUnavailable
	}

	progressions := make([]domain.LevelProgression, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		progressions = append(progressions, domain.LevelProgression{
			ID:          item.ID,
			Level:       item.Data.Level,
			Passed:      item.Data.PassedAt != nil,
			LastUpdate:  item.DataUpdatedAt,
			UnlockedAt:  strOrEmpty(item.Data.UnlockedAt),
			StartedAt:   strOrEmpty(item.Data.StartedAt),
			PassedAt:    strOrEmpty(item.Data.PassedAt),
			CompletedAt: strOrEmpty(item.Data.CompletedAt),
			AbandonedAt: strOrEmpty(item.Data.AbandonedAt),
		})
	}

	// The cached pointer is shared with concurrent readers; never write
	// through it. Store a copy carrying the new history instead.
	if profile, ok := c.cache.Profile(userID); ok {
		updated := *profile
		updated.LevelProgressions = progressions
		c.cache.SetProfile(userID, &updated)
	}

	return progressions, nil
}

// nextCursor extracts the page_after_id parameter from a next-page URL.
func nextCursor(nextURL *string) string {
	if nextURL == nil || *nextURL == "" {
		return ""
	}
	u, err := url.Parse(*nextURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("page_after_id")
}
