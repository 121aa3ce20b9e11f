package domain

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_site_stats_repository.go -package mocks github.com/taylorconnect/hub/internal/domain SiteStatsRepository
//go:generate mockgen -destination mocks/mock_impact_source.go -package mocks github.com/taylorconnect/hub/internal/domain ImpactSource
//go:generate mockgen -destination mocks/mock_statistics_service.go -package mocks github.com/taylorconnect/hub/internal/domain StatisticsService

// StatType names one headline statistic
type StatType string

const (
	StatActiveVolunteers     StatType = "active_volunteers"
	StatHoursContributed     StatType = "hours_contributed"
	StatPartnerOrganizations StatType = "partner_organizations"
)

// StatTypes lists every statistic in display order
var StatTypes = []StatType{StatActiveVolunteers, StatHoursContributed, StatPartnerOrganizations}

// ParseStatType validates a raw stat_type value
func ParseStatType(raw string) (StatType, error) {
	for _, st := range StatTypes {
		if string(st) == raw {
			return st, nil
		}
	}
	names := make([]string, len(StatTypes))
	for i, st := range StatTypes {
		names[i] = string(st)
	}
	return "", NewValidationError("Invalid stat_type. Must be one of: " + strings.Join(names, ", "))
}

// FallbackSignupHours is credited to a signup whose event has no usable time window
const FallbackSignupHours = 2

// SiteStatistic is the stored state of one statistic
type SiteStatistic struct {
	ID               string     `json:"id"`
	StatType         StatType   `json:"stat_type"`
	CalculatedValue  int64      `json:"calculated_value"`
	ManualOverride   *int64     `json:"manual_override"`
	ConfirmedTotal   int64      `json:"confirmed_total"`
	CurrentEstimate  int64      `json:"current_estimate"`
	LastCalculatedAt *time.Time `json:"last_calculated_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DisplayValue is the override when one is set, otherwise the calculated value
func (s *SiteStatistic) DisplayValue() int64 {
	if s.ManualOverride != nil {
		return *s.ManualOverride
	}
	return s.CalculatedValue
}

// StatisticView is the admin representation of a statistic
type StatisticView struct {
	CalculatedValue  int64      `json:"calculated_value"`
	ManualOverride   *int64     `json:"manual_override"`
	DisplayValue     int64      `json:"display_value"`
	LastCalculatedAt *time.Time `json:"last_calculated_at"`
}

func (s *SiteStatistic) View() StatisticView {
	return StatisticView{
		CalculatedValue:  s.CalculatedValue,
		ManualOverride:   s.ManualOverride,
		DisplayValue:     s.DisplayValue(),
		LastCalculatedAt: s.LastCalculatedAt,
	}
}

// StatisticViews indexes the views by stat type
func StatisticViews(stats []*SiteStatistic) map[StatType]StatisticView {
	views := make(map[StatType]StatisticView, len(stats))
	for _, s := range stats {
		views[s.StatType] = s.View()
	}
	return views
}

// ImpactCounts holds one computed value per statistic
type ImpactCounts struct {
	ActiveVolunteers     int64
	HoursContributed     int64
	PartnerOrganizations int64
}

func (c ImpactCounts) Get(st StatType) int64 {
	switch st {
	case StatActiveVolunteers:
		return c.ActiveVolunteers
	case StatHoursContributed:
		return c.HoursContributed
	case StatPartnerOrganizations:
		return c.PartnerOrganizations
	}
	return 0
}

// FieldError records a statistic that could not be computed
type FieldError struct {
	StatType StatType
	Err      error
}

func (e FieldError) Error() string {
	return string(e.StatType) + ": " + e.Err.Error()
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// ImpactResult is a computation pass. Failed fields are zero in Counts.
type ImpactResult struct {
	Counts ImpactCounts
	Errors []FieldError
}

func (r ImpactResult) Failed(st StatType) bool {
	for _, e := range r.Errors {
		if e.StatType == st {
			return true
		}
	}
	return false
}

func (r ImpactResult) AllFailed() bool {
	return len(r.Errors) >= len(StatTypes)
}

// ContentStats is the compact public payload; values are display strings
type ContentStats struct {
	VolunteersCount  string `json:"volunteers_count"`
	HoursServedTotal string `json:"hours_served_total"`
	PartnerOrgsCount string `json:"partner_orgs_count"`
}

func ContentStatsFromCounts(c ImpactCounts) ContentStats {
	return ContentStats{
		VolunteersCount:  strconv.FormatInt(c.ActiveVolunteers, 10),
		HoursServedTotal: strconv.FormatInt(c.HoursContributed, 10),
		PartnerOrgsCount: strconv.FormatInt(c.PartnerOrganizations, 10),
	}
}

// ContentStatsFromEntries reads the impact block back, missing keys become "0"
func ContentStatsFromEntries(entries []*ContentEntry) ContentStats {
	values := map[string]string{}
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	get := func(st StatType) string {
		if v, ok := values[string(st)]; ok {
			return v
		}
		return "0"
	}
	return ContentStats{
		VolunteersCount:  get(StatActiveVolunteers),
		HoursServedTotal: get(StatHoursContributed),
		PartnerOrgsCount: get(StatPartnerOrganizations),
	}
}

func ZeroContentStats() ContentStats {
	return ContentStats{VolunteersCount: "0", HoursServedTotal: "0", PartnerOrgsCount: "0"}
}

// SignupWindow is the time window of the event behind one signup. Empty strings
// mean the column was NULL.
type SignupWindow struct {
	ArrivalTime      string
	EstimatedEndTime string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Hours is the whole number of hours in the window, at least 1. A window with a
// missing or unparseable bound counts FallbackSignupHours.
func (w SignupWindow) Hours() int64 {
	if w.ArrivalTime == "" || w.EstimatedEndTime == "" {
		return FallbackSignupHours
	}
	start, ok := parseTimestamp(w.ArrivalTime)
	if !ok {
		return FallbackSignupHours
	}
	end, ok := parseTimestamp(w.EstimatedEndTime)
	if !ok {
		return FallbackSignupHours
	}
	hours := int64(end.Sub(start).Seconds() / 3600)
	if hours < 1 {
		return 1
	}
	return hours
}

// TotalHours sums Hours over every signup
func TotalHours(windows []SignupWindow) int64 {
	var total int64
	for _, w := range windows {
		total += w.Hours()
	}
	return total
}

// StatValues is one number per statistic in the public shape
type StatValues struct {
	ActiveVolunteers     int64 `json:"active_volunteers"`
	HoursContributed     int64 `json:"hours_contributed"`
	PartnerOrganizations int64 `json:"partner_organizations"`
}

func (v *StatValues) Set(st StatType, n int64) {
	switch st {
	case StatActiveVolunteers:
		v.ActiveVolunteers = n
	case StatHoursContributed:
		v.HoursContributed = n
	case StatPartnerOrganizations:
		v.PartnerOrganizations = n
	}
}

// RecordedAndLive pairs the confirmed totals with the current estimates
type RecordedAndLive struct {
	Recorded StatValues `json:"recorded"`
	Live     StatValues `json:"live"`
}

// StatField selects which stored number an update targets
type StatField string

const (
	StatFieldConfirmed StatField = "confirmed"
	StatFieldEstimate  StatField = "estimate"
)

// UpdateStatFieldRequest sets the confirmed total or the estimate of a statistic.
// Value accepts a JSON number or a numeric string.
type UpdateStatFieldRequest struct {
	StatType  string          `json:"stat_type"`
	FieldType string          `json:"field_type"`
	Value     json.RawMessage `json:"value"`
}

// Validate returns the parsed stat type, field and value
func (r UpdateStatFieldRequest) Validate() (StatType, StatField, int64, error) {
	raw := strings.TrimSpace(string(r.Value))
	if r.StatType == "" || r.FieldType == "" || raw == "" || raw == "null" {
		return "", "", 0, NewValidationError("Missing required fields: stat_type, field_type, value")
	}

	value, err := parseNonNegativeInt(r.Value)
	if err != nil {
		return "", "", 0, err
	}

	st, err := ParseStatType(r.StatType)
	if err != nil {
		return "", "", 0, err
	}

	field := StatField(r.FieldType)
	if field != StatFieldConfirmed && field != StatFieldEstimate {
		return "", "", 0, NewValidationError("Invalid field_type. Must be one of: confirmed, estimate")
	}

	return st, field, value, nil
}

// SetOverrideRequest sets or, with a null value, clears a manual override
type SetOverrideRequest struct {
	StatType       string          `json:"stat_type"`
	ManualOverride json.RawMessage `json:"manual_override"`
}

// Validate returns the stat type and the override, nil meaning clear
func (r SetOverrideRequest) Validate() (StatType, *int64, error) {
	if r.StatType == "" || len(r.ManualOverride) == 0 {
		return "", nil, NewValidationError("Missing required fields: stat_type and manual_override")
	}

	st, err := ParseStatType(r.StatType)
	if err != nil {
		return "", nil, err
	}

	if strings.TrimSpace(string(r.ManualOverride)) == "null" {
		return st, nil, nil
	}

	value, err := parseNonNegativeInt(r.ManualOverride)
	if err != nil {
		return "", nil, err
	}
	return st, &value, nil
}

// parseNonNegativeInt accepts 12, 12.0, "12" and " 12 "; fractions truncate
func parseNonNegativeInt(raw json.RawMessage) (int64, error) {
	invalid := NewValidationError("Value must be a valid integer")

	var n json.Number
	var s string
	switch {
	case json.Unmarshal(raw, &n) == nil:
	case json.Unmarshal(raw, &s) == nil:
		n = json.Number(strings.TrimSpace(s))
		if _, err := strconv.ParseInt(string(n), 10, 64); err != nil {
			return 0, invalid
		}
	default:
		return 0, invalid
	}

	value, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(n), 64)
		if ferr != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, invalid
		}
		value = int64(f)
	}

	if value < 0 {
		return 0, NewValidationError("Value must be a non-negative integer")
	}
	return value, nil
}

// StatDefaults are returned for statistics with no stored row
type StatDefaults struct {
	ActiveVolunteers     int64
	HoursContributed     int64
	PartnerOrganizations int64
}

func (d StatDefaults) Values() StatValues {
	return StatValues{
		ActiveVolunteers:     d.ActiveVolunteers,
		HoursContributed:     d.HoursContributed,
		PartnerOrganizations: d.PartnerOrganizations,
	}
}

// SiteStatsRepository stores the site_stats rows
type SiteStatsRepository interface {
	List(ctx context.Context) ([]*SiteStatistic, error)

	// UpdateCalculated stores a fresh calculated value, leaving any override in place
	UpdateCalculated(ctx context.Context, statType StatType, value int64, calculatedAt time.Time) error

	// SetManualOverride sets the override, nil clears it
	SetManualOverride(ctx context.Context, statType StatType, value *int64) error

	// UpdateField sets the confirmed total or the current estimate
	UpdateField(ctx context.Context, statType StatType, field StatField, value int64) error
}

// ImpactSource reads the raw tables behind the statistics
type ImpactSource interface {
	// CountActiveVolunteers counts volunteer profiles whose status is active
	CountActiveVolunteers(ctx context.Context) (int64, error)

	// CountPartnerOrganizations counts approved organizations, or all of them when none is approved
	CountPartnerOrganizations(ctx context.Context) (int64, error)

	// ListSignupWindows returns the event window of every signup
	ListSignupWindows(ctx context.Context) ([]SignupWindow, error)
}

// StatisticsService computes, stores and serves the site statistics
type StatisticsService interface {
	ComputeImpact(ctx context.Context) ImpactResult
	SyncImpact(ctx context.Context, counts ImpactCounts)
	ContentStats(ctx context.Context) (ContentStats, error)
	SiteStatistics(ctx context.Context) (map[StatType]StatisticView, error)
	Recalculate(ctx context.Context) (map[StatType]StatisticView, error)
	SetOverride(ctx context.Context, statType StatType, value *int64) (map[StatType]StatisticView, error)
	ClearOverride(ctx context.Context, statType StatType) (map[StatType]StatisticView, error)
	RecordedAndLive(ctx context.Context) (RecordedAndLive, error)
	UpdateStatField(ctx context.Context, req UpdateStatFieldRequest) (RecordedAndLive, error)
}
