package fixture

import (
	"errors"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidSeason  = crerr.New("season must be provided in the format 'YYYY-YYYY'")
	ErrFetchFailed    = crerr.New("failed to fetch data from FBref")
	ErrNoTableFound   = crerr.New("could not find any tables on the schedule page")
	ErrSchemaMismatch = crerr.New("unexpected table format from FBref")
)

// SchemaMismatchError names the required columns absent from the schedule table.
type SchemaMismatchError struct {
	Missing []string
}

func NewSchemaMismatchError(missing []string) *SchemaMismatchError {
	sorted := append([]string(nil), missing...)
	sort.Strings(sorted)
	return &SchemaMismatchError{Missing: sorted}
}

func (e *SchemaMismatchError) Error() string {
	return ErrSchemaMismatch.Error() + "; missing columns: " + strings.Join(e.Missing, ", ")
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// IsUpstreamFailure reports whether err came from fetching or reading the page.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrFetchFailed) ||
		errors.Is(err, ErrNoTableFound) ||
		errors.Is(err, ErrSchemaMismatch)
}
