package apperrors

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for the failure classes the API reports. Handlers pick the
// HTTP status from these, never from raw driver text.
var (
	ErrNotFound      = errors.New("record not found")
	ErrConfiguration = errors.New("configuration error")
	ErrConnectivity  = errors.New("database connection failed")
	ErrSchemaDrift   = errors.New("database schema out of date")
	ErrTimeout       = errors.New("database query timeout")
	ErrPersistence   = errors.New("persistence failure")
	ErrInternal      = errors.New("internal error")
)

// ===========================
// 📋 Validation Errors

// ValidationError carries every invalid field at once so the dashboard can
// highlight all of them in a single round trip.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ===========================
// 🧭 Postgres Error Classification

// Postgres error classes/codes we map onto the taxonomy. See
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
	pgQueryCanceled   = "57014"
)

// ClassifyPostgres maps a raw store error onto the taxonomy. Structured
// driver error codes are authoritative; message-substring matching is only a
// fallback for errors that never reached the wire protocol (dial errors,
// DSN parse failures and the like).
func ClassifyPostgres(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: the query exceeded its deadline; treat the outcome as unknown", ErrTimeout)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUndefinedTable:
			return fmt.Errorf("%w: table %q does not exist, run the migrations against this database (original error: %s)",
				ErrSchemaDrift, pgErr.TableName, pgErr.Message)
		case pgErr.Code == pgUndefinedColumn:
			return fmt.Errorf("%w: a column is missing, migrations have not been applied to this database (original error: %s)",
				ErrSchemaDrift, pgErr.Message)
		case pgErr.Code == pgQueryCanceled:
			return fmt.Errorf("%w: the query was cancelled by the server", ErrTimeout)
		case strings.HasPrefix(pgErr.Code, "28"): // invalid_authorization_specification
			return fmt.Errorf("%w: authentication failed, verify the DATABASE_URL credentials (original error: %s)",
				ErrConnectivity, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, "08"): // connection_exception
			return fmt.Errorf("%w: check that the database is reachable and SSL is configured correctly (original error: %s)",
				ErrConnectivity, pgErr.Message)
		}
		return fmt.Errorf("%w: %s (code %s)", ErrInternal, pgErr.Message, pgErr.Code)
	}

	return classifyByMessage(err)
}

// classifyByMessage is the documented last-resort classifier for drivers and
// wrappers that expose no structured code.
func classifyByMessage(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "does not exist") && (strings.Contains(msg, "table") || strings.Contains(msg, "relation")):
		return fmt.Errorf("%w: the events table does not exist, run the migrations against this database (original error: %v)",
			ErrSchemaDrift, err)
	case strings.Contains(msg, "does not exist") && strings.Contains(msg, "column"):
		return fmt.Errorf("%w: a column is missing, migrations have not been applied to this database (original error: %v)",
			ErrSchemaDrift, err)
	case strings.Contains(msg, "permission") || strings.Contains(msg, "access denied") || strings.Contains(msg, "authentication"):
		return fmt.Errorf("%w: authentication failed, verify the DATABASE_URL credentials (original error: %v)",
			ErrConnectivity, err)
	case strings.Contains(msg, "connection") || strings.Contains(msg, "connect") ||
		strings.Contains(msg, "timeout") || strings.Contains(msg, "etimedout") ||
		strings.Contains(msg, "ssl") || strings.Contains(msg, "certificate"):
		return fmt.Errorf("%w: check that DATABASE_URL is set, the server is reachable and the firewall allows connections (original error: %v)",
			ErrConnectivity, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// ===========================
// 🌐 HTTP Mapping

// Code returns the machine-readable error code used in the response envelope.
func Code(err error) string {
	if _, ok := AsValidation(err); ok {
		return "VALIDATION_ERROR"
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConfiguration),
		errors.Is(err, ErrConnectivity),
		errors.Is(err, ErrSchemaDrift),
		errors.Is(err, ErrTimeout):
		return "DATABASE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps a taxonomy error onto the status code the API responds with.
func HTTPStatus(err error) int {
	if _, ok := AsValidation(err); ok {
		return 400
	}
	if errors.Is(err, ErrNotFound) {
		return 404
	}
	return 500
}
