package monitor

import (
	"context"
	"time"

	"github.com/aleister1102/webwatch/internal/config"
	"github.com/aleister1102/webwatch/internal/datastore"
	"github.com/aleister1102/webwatch/internal/models"
	"github.com/aleister1102/webwatch/internal/reporter"
	"github.com/rs/zerolog"
)

// MonitoringService runs one full monitoring cycle: load persisted digests,
// check every configured target sequentially, persist the updated digests and
// return the ordered list of reportable events.
type MonitoringService struct {
	cfg     *config.MonitorConfig
	store   *datastore.HashStore
	checker *TargetChecker
	printer *reporter.ConsolePrinter
	logger  zerolog.Logger
}

// NewMonitoringService creates a new MonitoringService. The printer may be nil
// when no console output is wanted (tests).
func NewMonitoringService(
	cfg *config.MonitorConfig,
	store *datastore.HashStore,
	checker *TargetChecker,
	printer *reporter.ConsolePrinter,
	logger zerolog.Logger,
) *MonitoringService {
	return &MonitoringService{
		cfg:     cfg,
		store:   store,
		checker: checker,
		printer: printer,
		logger:  logger.With().Str("component", "MonitoringService").Logger(),
	}
}

// CycleResult holds the outcome of one monitoring cycle.
type CycleResult struct {
	// Events are the reportable (non-Unchanged) outcomes in configured order.
	Events []models.ChangeEvent
	// Results are all per-target outcomes in configured order.
	Results []models.CheckResult
	// Digests is the mapping persisted at the end of the cycle.
	Digests map[string]string
}

// RunCycle processes every target in the configuration's declared order, one
// at a time, sleeping the configured delay after each target regardless of
// outcome. A target whose fetch fails keeps its previously persisted digest;
// only successful fetches overwrite entries. The updated mapping is saved once
// at the end of the cycle; a save failure is returned and aborts the run.
//
// A cancelled context ends the cycle before the final save, which leaves the
// store file in its pre-run state.
func (s *MonitoringService) RunCycle(ctx context.Context) (*CycleResult, error) {
	previous := s.store.Load()

	// Start from the loaded mapping so a failed fetch never erases history.
	current := make(map[string]string, len(previous))
	for name, digest := range previous {
		current[name] = digest
	}

	results := make([]models.CheckResult, 0, len(s.cfg.Targets))
	events := make([]models.ChangeEvent, 0, len(s.cfg.Targets))

	s.logger.Info().Int("targets", len(s.cfg.Targets)).Msg("Monitoring cycle started")

	for _, targetCfg := range s.cfg.Targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target := models.Target{Name: targetCfg.Name, URL: targetCfg.URL}
		previousDigest, hasPrevious := previous[target.Name]

		result := s.checker.Check(ctx, target, previousDigest, hasPrevious)
		results = append(results, result)

		if result.Status != models.StatusError {
			current[target.Name] = result.NewDigest
		}

		if event, reportable := models.NewChangeEvent(result); reportable {
			events = append(events, event)
		}

		s.printer.PrintResult(result)

		if err := s.sleepBetweenTargets(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.store.Save(current); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("checked", len(results)).
		Int("reportable", len(events)).
		Msg("Monitoring cycle finished")

	return &CycleResult{
		Events:  events,
		Results: results,
		Digests: current,
	}, nil
}

// sleepBetweenTargets applies the fixed inter-target delay. The delay throttles
// request rate and runs after every target regardless of outcome.
func (s *MonitoringService) sleepBetweenTargets(ctx context.Context) error {
	if s.cfg.DelaySeconds <= 0 {
		return nil
	}

	select {
	case <-time.After(time.Duration(s.cfg.DelaySeconds) * time.Second):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
