package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "invalid season",
			err:     fixture.ErrInvalidSeason,
			status:  http.StatusBadRequest,
			message: "season must be provided in the format 'YYYY-YYYY'",
		},
		{
			name:    "fetch failed",
			err:     fmt.Errorf("%w: %w", fixture.ErrFetchFailed, errors.New("unexpected status 503 Service Unavailable")),
			status:  http.StatusBadGateway,
			message: "failed to fetch data from FBref: unexpected status 503 Service Unavailable",
		},
		{
			name:    "no table",
			err:     fixture.ErrNoTableFound,
			status:  http.StatusBadGateway,
			message: "could not find any tables on the schedule page",
		},
		{
			name:    "schema mismatch",
			err:     fixture.NewSchemaMismatchError([]string{"Venue", "Score"}),
			status:  http.StatusBadGateway,
			message: "unexpected table format from FBref; missing columns: Score, Venue",
		},
		{
			name:    "anything else",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "Unexpected error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if got.HTTPStatus != tt.status {
				t.Fatalf("unexpected status: got=%d want=%d", got.HTTPStatus, tt.status)
			}
			if got.Message != tt.message {
				t.Fatalf("unexpected message:\n got: %q\nwant: %q", got.Message, tt.message)
			}
		})
	}
}

func TestWriteError_FlatEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fixture.ErrInvalidSeason)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("expected only the error key, got %v", body)
	}
	if got, _ := body["error"].(string); got != fixture.ErrInvalidSeason.Error() {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}
