package apperrors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel error kinds. Services and handlers branch on these with
// errors.Is; anything else coming out of a repository is a persistence
// failure.
var (
	// ErrNotFound means the target record is absent.
	ErrNotFound = errors.New("record not found")

	// ErrPermission means the actor may not perform the mutation, either
	// by application rule or because the store rejected the write under an
	// authorization policy.
	ErrPermission = errors.New("permission denied")

	// ErrAlreadyExists means a duplicate unique-constraint violation.
	// Benign for like/bookmark toggle semantics.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrValidation means the input was rejected before reaching the store.
	ErrValidation = errors.New("validation failed")
)

// PersistenceError wraps any other gateway-level failure (network,
// constraint, validation) so callers can distinguish it from the sentinel
// kinds above.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Postgres error codes the repositories care about.
const (
	pgUniqueViolation       = "23505"
	pgInsufficientPrivilege = "42501"
)

// FromDB classifies a database error into one of the app error kinds.
// nil stays nil; unique violations become ErrAlreadyExists, privilege
// rejections become ErrPermission, everything else is wrapped as a
// PersistenceError tagged with op.
func FromDB(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		case pgInsufficientPrivilege:
			return fmt.Errorf("%s: %w", op, ErrPermission)
		}
	}

	return &PersistenceError{Op: op, Err: err}
}

// IsNotFound reports whether err is the not-found kind.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsPermission reports whether err is the permission kind.
func IsPermission(err error) bool { return errors.Is(err, ErrPermission) }

// IsAlreadyExists reports whether err is the duplicate kind.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsValidation reports whether err is the validation kind.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
