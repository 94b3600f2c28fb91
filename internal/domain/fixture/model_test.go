package fixture

import (
	"errors"
	"fmt"
	"testing"
)

func TestSchemaMismatchError_SortsAndJoins(t *testing.T) {
	err := NewSchemaMismatchError([]string{"Venue", "Score"})

	want := "unexpected table format from FBref; missing columns: Score, Venue"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got: %s\nwant: %s", err.Error(), want)
	}
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected errors.Is(ErrSchemaMismatch)")
	}

	var typed *SchemaMismatchError
	if !errors.As(fmt.Errorf("extract: %w", err), &typed) {
		t.Fatalf("expected errors.As to find SchemaMismatchError")
	}
	if len(typed.Missing) != 2 || typed.Missing[0] != "Score" {
		t.Fatalf("unexpected missing columns: %v", typed.Missing)
	}
}

func TestIsUpstreamFailure(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("%w: %w", ErrFetchFailed, errors.New("status 503")), true},
		{ErrNoTableFound, true},
		{NewSchemaMismatchError([]string{"Round"}), true},
		{ErrInvalidSeason, false},
		{errors.New("boom"), false},
	}

	for _, tc := range cases {
		if got := IsUpstreamFailure(tc.err); got != tc.want {
			t.Fatalf("IsUpstreamFailure(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestFromColumns(t *testing.T) {
	row := map[string]string{
		ColumnDate:  "2023-08-11",
		ColumnRound: "1",
		ColumnHome:  "Burnley",
		ColumnAway:  "Manchester City",
		ColumnScore: "0–3",
	}

	got := FromColumns(func(column string) string { return row[column] })
	want := Fixture{Date: "2023-08-11", Round: "1", Home: "Burnley", Away: "Manchester City", Score: "0–3", Venue: ""}
	if got != want {
		t.Fatalf("unexpected fixture: %+v", got)
	}
}
