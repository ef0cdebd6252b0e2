package repository

import (
	"database/sql"

	"github.com/goliatone/go-errors"
)

// notFound maps driver no-rows results to a tagged NotFound error so callers
// can dispatch with errors.IsNotFound instead of inspecting messages.
func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New(msg, errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return errors.Wrap(err, errors.CategoryInternal, msg)
}
