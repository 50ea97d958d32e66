package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrDuplicateSlug maps the unique index on pages.slug; surfaced to
	// callers as a validation failure, not a server error.
	ErrDuplicateSlug = errors.New("page with this slug already exists")

	// ErrDuplicateEmail maps the unique index on users.email.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrPageReference maps the sections.page_id foreign key: the referenced
	// page does not exist.
	ErrPageReference = errors.New("referenced page does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
