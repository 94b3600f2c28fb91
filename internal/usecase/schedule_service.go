package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ScheduleSource locates and downloads a season's schedule page.
type ScheduleSource interface {
	ScheduleURL(season string) string
	FetchHTML(ctx context.Context, pageURL string) (string, error)
}

// FixtureExtractor turns a schedule page into fixtures.
type FixtureExtractor func(html string) ([]fixture.Fixture, error)

type ScrapeRecorder interface {
	ObserveScrape(outcome string, elapsed time.Duration, fixtures int)
}

// Scrape outcomes reported to the ScrapeRecorder.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidSeason  = "invalid_season"
	OutcomeFetchFailed    = "fetch_failed"
	OutcomeNoTable        = "no_table"
	OutcomeSchemaMismatch = "schema_mismatch"
	OutcomeError          = "error"
)

const seasonRule = "required,contains=-"

type ScheduleService struct {
	source   ScheduleSource
	extract  FixtureExtractor
	validate *validator.Validate
	recorder ScrapeRecorder
	logger   *logging.Logger
	now      func() time.Time
}

func NewScheduleService(
	source ScheduleSource,
	extract FixtureExtractor,
	recorder ScrapeRecorder,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &ScheduleService{
		source:   source,
		extract:  extract,
		validate: validator.New(),
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// ScrapeSeasonSchedule validates season, fetches its schedule page and
// extracts the fixtures. Errors from the fetcher and the extractor are
// returned unchanged so callers can classify them with errors.Is.
func (s *ScheduleService) ScrapeSeasonSchedule(ctx context.Context, season string) ([]fixture.Fixture, error) {
	season = fixture.NormalizeSeason(season)
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ScrapeSeasonSchedule", attribute.String("fbref.season", season))
	defer span.End()

	started := s.now()

	fixtures, err := s.scrape(ctx, season)
	elapsed := s.now().Sub(started)
	outcome := ScrapeOutcome(err)
	s.recorder.ObserveScrape(outcome, elapsed, len(fixtures))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		level := s.logger.WarnContext
		if outcome == OutcomeError {
			level = s.logger.ErrorContext
		}
		level(ctx, "scrape season schedule failed",
			"season", season,
			"outcome", outcome,
			"elapsed", elapsed.String(),
			"error", err,
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("fbref.fixtures", len(fixtures)))
	s.logger.InfoContext(ctx, "scraped season schedule",
		"season", season,
		"fixtures", len(fixtures),
		"elapsed", elapsed.String(),
	)
	return fixtures, nil
}

func (s *ScheduleService) scrape(ctx context.Context, season string) ([]fixture.Fixture, error) {
	if err := s.validate.VarCtx(ctx, season, seasonRule); err != nil {
		return nil, fixture.ErrInvalidSeason
	}
	if s.source == nil || s.extract == nil {
		return nil, fmt.Errorf("%w: schedule source is not configured", ErrDependencyUnavailable)
	}

	pageURL := s.source.ScheduleURL(season)
	html, err := s.source.FetchHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return s.extract(html)
}

// ScrapeOutcome names the class of a scrape result for metrics and logs.
func ScrapeOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, fixture.ErrInvalidSeason):
		return OutcomeInvalidSeason
	case errors.Is(err, fixture.ErrFetchFailed):
		return OutcomeFetchFailed
	case errors.Is(err, fixture.ErrNoTableFound):
		return OutcomeNoTable
	case errors.Is(err, fixture.ErrSchemaMismatch):
		return OutcomeSchemaMismatch
	default:
		return OutcomeError
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveScrape(string, time.Duration, int) {}
