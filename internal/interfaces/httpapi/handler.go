package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/fbref-fixtures/internal/interfaces/calendar"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
)

const maxRequestBodyBytes = 64 << 10

// ScheduleScraper runs the season pipeline behind POST /api/scrape.
type ScheduleScraper interface {
	ScrapeSeasonSchedule(ctx context.Context, season string) ([]fixture.Fixture, error)
}

type Handler struct {
	scraper ScheduleScraper
	logger  *logging.Logger
	now     func() time.Time
}

func NewHandler(scraper ScheduleScraper, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scraper: scraper,
		logger:  logger,
		now:     time.Now,
	}
}

type scrapeRequest struct {
	Season string `json:"season"`
}

type scrapeResponse struct {
	Season   string            `json:"season"`
	Fixtures []fixture.Fixture `json:"fixtures"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Scrape decodes {"season": "..."} and answers with the season's fixtures.
// A body that is not a JSON object with a string season counts as an empty
// season and is rejected by validation.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r.Context(), "Scrape")
	defer span.End()

	var req scrapeRequest
	if err := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		h.logger.DebugContext(ctx, "scrape request body ignored", "request_id", requestIDFromContext(ctx), "error", err)
		req = scrapeRequest{}
	}
	season := fixture.NormalizeSeason(req.Season)

	fixtures, err := h.scraper.ScrapeSeasonSchedule(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if fixtures == nil {
		fixtures = []fixture.Fixture{}
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		Season:   season,
		Fixtures: fixtures,
	})
}

// Calendar serves a season's fixtures as an iCalendar attachment. The path
// segment may carry a trailing ".ics".
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r.Context(), "Calendar")
	defer span.End()

	season := fixture.NormalizeSeason(strings.TrimSuffix(r.PathValue("season"), ".ics"))
	fixtures, err := h.scraper.ScrapeSeasonSchedule(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	feed, skipped := calendar.Encode(season, fixtures, h.now())
	if skipped > 0 {
		h.logger.DebugContext(ctx, "calendar rows without a date skipped", "season", season, "skipped", skipped)
	}

	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+calendar.Filename(season)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}
