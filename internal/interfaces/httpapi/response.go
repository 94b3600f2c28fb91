package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
)

const unexpectedErrorPrefix = "Unexpected error: "

type errorBody struct {
	Error string `json:"error"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	markSpanError(ctx, err, mapped.HTTPStatus)
	writeJSON(w, mapped.HTTPStatus, errorBody{Error: mapped.Message})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: unexpectedErrorPrefix + "internal server error"})
}

// mapError maps validation failures to 400, upstream fetch and page format
// failures to 502 and anything else to 500.
func mapError(err error) mappedError {
	switch {
	case errors.Is(err, fixture.ErrInvalidSeason):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Message:    err.Error(),
		}
	case fixture.IsUpstreamFailure(err):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Message:    err.Error(),
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Message:    unexpectedErrorPrefix + err.Error(),
		}
	}
}
