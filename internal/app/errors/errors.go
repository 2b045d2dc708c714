package errors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrFailedToLoadEnvFile = errors.New("failed to load env file")

	ErrInvalidAge             = errors.New("age must be between 0 and 255")
	ErrInvalidServerAddress   = errors.New("server address is required")
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must not be negative")
	ErrInvalidMaxInFlight     = errors.New("max in-flight requests must be positive")
	ErrInvalidQueueTimeout    = errors.New("queue timeout must not be negative")
	ErrInvalidDatabaseDriver  = errors.New("invalid database driver")
	ErrDatabaseDSNRequired    = errors.New("database dsn is required for driver 'sqlite'")
	ErrInvalidMaxOpenConns    = errors.New("max open connections must be positive")
	ErrInvalidMaxIdleConns    = errors.New("max idle connections must not be negative")

	ErrFailedToOpenDatabase = errors.New("failed to open database")
	ErrFailedToPingDatabase = errors.New("failed to ping database")
	ErrFailedToCreateSchema = errors.New("failed to create schema")
	ErrFailedToListen       = errors.New("failed to listen")

	ErrPostNotFound     = errors.New("blog post not found")
	ErrNoPosts          = errors.New("no blog posts exist")
	ErrInvalidPostID    = errors.New("invalid blog post id")
	ErrInvalidPayload   = errors.New("invalid blog post payload")
	ErrMalformedBody    = errors.New("malformed request body")
	ErrMissingField     = errors.New("missing required field")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrServerBusy       = errors.New("server busy")

	ErrUnknownCommand = errors.New("unknown command")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)

// Kind classifies an error for callers that must react to a whole family of failures
type Kind int

// Error kinds
const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidPayload
	KindStoreUnavailable
	KindStartupFailure
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidPayload:
		return "invalid_payload"
	case KindStoreUnavailable:
		return "store_unavailable"
	case KindStartupFailure:
		return "startup_failure"
	default:
		return "unknown"
	}
}

var kinds = []struct {
	kind   Kind
	errors []error
}{
	{KindNotFound, []error{ErrPostNotFound, ErrNoPosts, ErrInvalidPostID}},
	{KindInvalidPayload, []error{ErrInvalidPayload, ErrMissingField, ErrMalformedBody}},
	{KindStoreUnavailable, []error{ErrStoreUnavailable}},
	{KindStartupFailure, []error{
		ErrFailedToReadConfig,
		ErrFailedToParseConfig,
		ErrInvalidConfig,
		ErrFailedToLoadEnvFile,
		ErrFailedToOpenDatabase,
		ErrFailedToPingDatabase,
		ErrFailedToCreateSchema,
		ErrFailedToListen,
	}},
}

// KindOf returns the kind of the first known sentinel found in the error chain
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	for _, k := range kinds {
		for _, sentinel := range k.errors {
			if errors.Is(err, sentinel) {
				return k.kind
			}
		}
	}

	return KindUnknown
}

// StoreFailure wraps a driver error as ErrStoreUnavailable and records the call stack
func StoreFailure(op string, err error) error {
	return pkgerrors.WithStack(fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err))
}
