package common

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
)

var (
	// ErrInvalidCriteria is returned for search criteria that cannot be interpreted.
	// The filter compiler accepts every criteria set; transports use it for
	// parameters that fail to parse.
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrServiceUnavailable means no database connection could be obtained.
	ErrServiceUnavailable = errors.New("database is not available")

	// ErrQuery marks failures reported by the database for an executed query.
	ErrQuery = errors.New("query failed")

	// ErrNormalization is reserved; normalization is total and never returns it.
	ErrNormalization = errors.New("normalization failed")
)

// ParamError is an uninterpretable value of a named request parameter.
// errors.Is(err, ErrInvalidCriteria) holds for it.
type ParamError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s %s, got %q", ErrInvalidCriteria, e.Param, e.Reason, e.Value)
}

func (e *ParamError) Is(target error) bool { return target == ErrInvalidCriteria }

// QueryError wraps a database failure of an executed query.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrQuery) hold for every QueryError.
func (e *QueryError) Is(target error) bool { return target == ErrQuery }

// SQLState returns the PostgreSQL error code, or "" when the cause is not a server error.
func (e *QueryError) SQLState() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// BadInput reports whether the database rejected the query because of a
// supplied value, e.g. a type mismatch between an argument and a column.
func (e *QueryError) BadInput() bool {
	code := e.SQLState()
	if code == "" {
		return false
	}
	return code[:2] == "22" || code == "42804" || code == "42883"
}

// ClassifyDBError converts a raw pgx error into ErrServiceUnavailable or a *QueryError.
func ClassifyDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, puddle.ErrClosedPool) {
		return fmt.Errorf("%s: %w: %v", op, ErrServiceUnavailable, err)
	}
	return &QueryError{Op: op, Err: err}
}
