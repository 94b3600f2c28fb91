package usecase

import crerr "github.com/cockroachdb/errors"

var ErrDependencyUnavailable = crerr.New("dependency unavailable")
