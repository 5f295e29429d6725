package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aleister1102/webwatch/internal/common"
	"github.com/aleister1102/webwatch/internal/config"
	"github.com/rs/zerolog"
)

// Fetcher handles fetching content from monitored URLs.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
	cfg        *config.MonitorConfig // For timeout, user-agent, content size cap
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client *http.Client, logger zerolog.Logger, cfg *config.MonitorConfig) *Fetcher {
	return &Fetcher{
		httpClient: client,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
		cfg:        cfg,
	}
}

// FetchResult holds the outcome of a successful fetch.
type FetchResult struct {
	Body           []byte
	ContentType    string
	HTTPStatusCode int
}

// Fetch issues a blocking GET against the URL and returns the exact response
// body bytes. Any non-2xx status is treated as a failure equivalent to a
// network error, so it classifies the same way downstream.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to create new HTTP request")
		return nil, common.WrapError(err, fmt.Sprintf("creating request for %s", url))
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to execute HTTP request")
		return nil, common.NewNetworkError(url, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	result := &FetchResult{
		ContentType:    resp.Header.Get("Content-Type"),
		HTTPStatusCode: resp.StatusCode,
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.logger.Warn().Str("url", url).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		// Read a little of the body for potential error messages
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return result, common.NewHTTPErrorWithURL(resp.StatusCode, string(bodyBytes), url)
	}

	if resp.ContentLength > 0 && resp.ContentLength > int64(f.cfg.MaxContentSize) {
		return nil, common.NewError("content too large: %d bytes (max: %d bytes)", resp.ContentLength, f.cfg.MaxContentSize)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.cfg.MaxContentSize)+1))
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to read response body")
		return nil, common.WrapError(err, "failed to read response body")
	}

	// Check actual body size; ContentLength is often -1
	if len(bodyBytes) > f.cfg.MaxContentSize {
		return nil, common.NewError("content too large: %d bytes (max: %d bytes)", len(bodyBytes), f.cfg.MaxContentSize)
	}

	result.Body = bodyBytes

	f.logger.Debug().Str("url", url).Str("content_type", result.ContentType).Int("size", len(result.Body)).Msg("Content fetched successfully")
	return result, nil
}
