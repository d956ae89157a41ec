package domain

import "errors"

// Error kinds shared by services and repositories. Callers add detail with
// fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("already exists")
	ErrAuthorization   = errors.New("not authorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// PersistenceError reports a failed store operation. Op describes what was
// being attempted; Err is the driver error, kept for diagnostics.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return "persistence: " + e.Op
	}
	return "persistence: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ServiceError is a persistence fault surfaced through the service layer.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsClientError reports whether err is one of the input-related kinds above,
// i.e. something the caller can fix by changing the request.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAuthorization) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidArgument)
}
