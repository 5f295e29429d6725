package monitor

import (
	"context"
	"time"

	"github.com/aleister1102/webwatch/internal/models"
	"github.com/rs/zerolog"
)

// TargetChecker checks a single target and classifies the outcome against the
// previously recorded digest.
type TargetChecker struct {
	logger    zerolog.Logger
	fetcher   *Fetcher
	processor *ContentProcessor
}

// NewTargetChecker creates a new TargetChecker.
func NewTargetChecker(logger zerolog.Logger, fetcher *Fetcher, processor *ContentProcessor) *TargetChecker {
	return &TargetChecker{
		logger:    logger.With().Str("component", "TargetChecker").Logger(),
		fetcher:   fetcher,
		processor: processor,
	}
}

// Check fetches and hashes one target and produces the four-way classification:
//   - fetch failed               -> StatusError (prior digest must not be touched)
//   - no prior digest recorded   -> StatusInitial
//   - digest differs from prior  -> StatusChanged
//   - digest matches prior       -> StatusUnchanged
//
// Failures are carried in the result, never raised, so one bad target cannot
// abort the rest of the run.
func (tc *TargetChecker) Check(ctx context.Context, target models.Target, previousDigest string, hasPrevious bool) models.CheckResult {
	result := models.CheckResult{
		Target:      target,
		OldDigest:   previousDigest,
		HasPrevious: hasPrevious,
		CheckedAt:   time.Now(),
	}

	fetchResult, err := tc.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		tc.logger.Error().Err(err).Str("name", target.Name).Str("url", target.URL).Msg("Check failed")
		result.Status = models.StatusError
		result.Err = err
		return result
	}

	result.NewDigest = tc.processor.Digest(fetchResult.Body)

	switch {
	case !hasPrevious:
		result.Status = models.StatusInitial
		tc.logger.Info().Str("name", target.Name).Str("digest", result.NewDigest).Msg("First check, recording initial hash")
	case previousDigest != result.NewDigest:
		result.Status = models.StatusChanged
		tc.logger.Info().Str("name", target.Name).Str("old_digest", previousDigest).Str("new_digest", result.NewDigest).Msg("Change detected")
	default:
		result.Status = models.StatusUnchanged
		tc.logger.Info().Str("name", target.Name).Msg("No change")
	}

	return result
}
