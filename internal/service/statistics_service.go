package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/tracing"
)

type StatisticsService struct {
	stats    domain.SiteStatsRepository
	source   domain.ImpactSource
	content  domain.ContentService
	defaults domain.StatDefaults
	logger   logger.Logger
	tracer   tracing.Tracer
	now      func() time.Time
}

type StatisticsServiceConfig struct {
	Stats    domain.SiteStatsRepository
	Source   domain.ImpactSource
	Content  domain.ContentService
	Defaults domain.StatDefaults
	Logger   logger.Logger
	Tracer   tracing.Tracer
}

func NewStatisticsService(cfg StatisticsServiceConfig) *StatisticsService {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.GetTracer()
	}

	return &StatisticsService{
		stats:    cfg.Stats,
		source:   cfg.Source,
		content:  cfg.Content,
		defaults: cfg.Defaults,
		logger:   cfg.Logger,
		tracer:   tracer,
		now:      time.Now,
	}
}

var _ domain.StatisticsService = (*StatisticsService)(nil)

// ComputeImpact runs the three counts concurrently. A failing count is reported
// in the result and left at zero without affecting the others.
func (s *StatisticsService) ComputeImpact(ctx context.Context) domain.ImpactResult {
	ctx, span := s.tracer.StartServiceSpan(ctx, "StatisticsService", "ComputeImpact")
	defer span.End()

	counters := map[domain.StatType]func(context.Context) (int64, error){
		domain.StatActiveVolunteers:     s.source.CountActiveVolunteers,
		domain.StatHoursContributed:     s.countHours,
		domain.StatPartnerOrganizations: s.source.CountPartnerOrganizations,
	}

	values := make([]int64, len(domain.StatTypes))
	errs := make([]error, len(domain.StatTypes))

	var g errgroup.Group
	for i, st := range domain.StatTypes {
		i, count := i, counters[st]
		g.Go(func() error {
			values[i], errs[i] = count(ctx)
			return nil
		})
	}
	_ = g.Wait()

	var result domain.ImpactResult
	for i, st := range domain.StatTypes {
		if errs[i] != nil {
			s.logger.WithFields(map[string]interface{}{
				"stat_type": string(st),
				"error":     errs[i].Error(),
			}).Error("Failed to compute statistic")
			s.tracer.RecordImpactFieldError(ctx, string(st))
			result.Errors = append(result.Errors, domain.FieldError{StatType: st, Err: errs[i]})
			continue
		}
		switch st {
		case domain.StatActiveVolunteers:
			result.Counts.ActiveVolunteers = values[i]
		case domain.StatHoursContributed:
			result.Counts.HoursContributed = values[i]
		case domain.StatPartnerOrganizations:
			result.Counts.PartnerOrganizations = values[i]
		}
	}

	s.tracer.AddAttribute(ctx, "impact.failed_fields", len(result.Errors))
	return result
}

func (s *StatisticsService) countHours(ctx context.Context) (int64, error) {
	windows, err := s.source.ListSignupWindows(ctx)
	if err != nil {
		return 0, err
	}
	return domain.TotalHours(windows), nil
}

// SyncImpact mirrors the counts into the homepage impact content. Failures are
// only logged.
func (s *StatisticsService) SyncImpact(ctx context.Context, counts domain.ImpactCounts) {
	for _, st := range domain.StatTypes {
		value := strconv.FormatInt(counts.Get(st), 10)
		if _, err := s.content.Upsert(ctx, domain.ImpactPage, domain.ImpactSection, string(st), value, domain.DefaultLanguageCode); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"stat_type": string(st),
				"error":     err.Error(),
			}).Warn("Failed to sync statistic to content")
		}
	}
}

// ContentStats computes fresh counts and syncs them. When no count could be
// computed the last synced content is served instead.
func (s *StatisticsService) ContentStats(ctx context.Context) (domain.ContentStats, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "StatisticsService", "ContentStats")
	defer span.End()

	result := s.ComputeImpact(ctx)
	if !result.AllFailed() {
		s.SyncImpact(ctx, result.Counts)
		return domain.ContentStatsFromCounts(result.Counts), nil
	}

	s.logger.Warn("All statistics failed, falling back to stored content")

	keys := make([]string, len(domain.StatTypes))
	for i, st := range domain.StatTypes {
		keys[i] = string(st)
	}
	entries, err := s.content.List(ctx, domain.ContentFilter{
		Page:    domain.ImpactPage,
		Section: domain.ImpactSection,
		Keys:    keys,
	})
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return domain.ZeroContentStats(), fmt.Errorf("failed to load statistics: %w", err)
	}

	return domain.ContentStatsFromEntries(entries), nil
}

func (s *StatisticsService) SiteStatistics(ctx context.Context) (map[domain.StatType]domain.StatisticView, error) {
	stats, err := s.stats.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list site statistics: %v", err))
		return nil, fmt.Errorf("failed to list site statistics: %w", err)
	}
	return domain.StatisticViews(stats), nil
}

// Recalculate stores a fresh calculated value for every count that succeeded.
// Manual overrides are left untouched.
func (s *StatisticsService) Recalculate(ctx context.Context) (map[domain.StatType]domain.StatisticView, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "StatisticsService", "Recalculate")
	defer span.End()

	result := s.ComputeImpact(ctx)
	if result.AllFailed() {
		err := fmt.Errorf("failed to calculate statistics: %w", result.Errors[0])
		s.tracer.MarkSpanError(ctx, err)
		return nil, err
	}

	now := s.now().UTC()
	for _, st := range domain.StatTypes {
		if result.Failed(st) {
			continue
		}
		if err := s.stats.UpdateCalculated(ctx, st, result.Counts.Get(st), now); err != nil {
			s.tracer.MarkSpanError(ctx, err)
			return nil, err
		}
	}

	s.SyncImpact(ctx, result.Counts)

	return s.SiteStatistics(ctx)
}

// SetOverride sets the manual override of a statistic, nil clears it
func (s *StatisticsService) SetOverride(ctx context.Context, statType domain.StatType, value *int64) (map[domain.StatType]domain.StatisticView, error) {
	if err := s.stats.SetManualOverride(ctx, statType, value); err != nil {
		s.logger.WithField("stat_type", string(statType)).Error(fmt.Sprintf("Failed to set manual override: %v", err))
		return nil, err
	}

	fields := map[string]interface{}{"stat_type": string(statType)}
	if value != nil {
		fields["manual_override"] = *value
	}
	s.logger.WithFields(fields).Info("Manual override updated")

	return s.SiteStatistics(ctx)
}

func (s *StatisticsService) ClearOverride(ctx context.Context, statType domain.StatType) (map[domain.StatType]domain.StatisticView, error) {
	return s.SetOverride(ctx, statType, nil)
}

// RecordedAndLive returns the confirmed totals and the estimates. Missing rows
// use the configured defaults; on a store error the defaults are returned with it.
func (s *StatisticsService) RecordedAndLive(ctx context.Context) (domain.RecordedAndLive, error) {
	out := domain.RecordedAndLive{
		Recorded: s.defaults.Values(),
		Live:     s.defaults.Values(),
	}

	stats, err := s.stats.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to read statistics, serving defaults: %v", err))
		return out, fmt.Errorf("failed to read statistics: %w", err)
	}

	for _, stat := range stats {
		out.Recorded.Set(stat.StatType, stat.ConfirmedTotal)
		out.Live.Set(stat.StatType, stat.CurrentEstimate)
	}
	return out, nil
}

func (s *StatisticsService) UpdateStatField(ctx context.Context, req domain.UpdateStatFieldRequest) (domain.RecordedAndLive, error) {
	statType, field, value, err := req.Validate()
	if err != nil {
		return domain.RecordedAndLive{}, err
	}

	if err := s.stats.UpdateField(ctx, statType, field, value); err != nil {
		return domain.RecordedAndLive{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"stat_type":  string(statType),
		"field_type": string(field),
		"value":      value,
	}).Info("Statistic updated")

	return s.RecordedAndLive(ctx)
}
