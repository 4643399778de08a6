package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError: a referenced product, category or order does not exist (or
// is hidden from the caller).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// InvalidInputError: the request is malformed (empty file, missing field).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func InvalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// InventoryConflictError: the inventory service rejected a sale (price or
// stock). Body is the remote error payload and is surfaced verbatim.
type InventoryConflictError struct {
	Body string
}

func (e *InventoryConflictError) Error() string { return e.Body }

// ServiceCommunicationError: a downstream service is unreachable or returned
// an unexpected failure.
type ServiceCommunicationError struct {
	Service string
	Err     error
}

func (e *ServiceCommunicationError) Error() string {
	return fmt.Sprintf("could not communicate with the %s service", e.Service)
}

func (e *ServiceCommunicationError) Unwrap() error { return e.Err }

// StorageError: the document store or blob store failed. Never retried or
// rolled back here; callers treat it as requiring manual reconciliation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s", e.Op)
}

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsInvalidInput(err error) bool {
	var ii *InvalidInputError
	return errors.As(err, &ii)
}

func IsInventoryConflict(err error) bool {
	var ic *InventoryConflictError
	return errors.As(err, &ic)
}

// HTTPStatus maps the error taxonomy onto stable response codes.
func HTTPStatus(err error) int {
	var (
		nf *NotFoundError
		ii *InvalidInputError
		ic *InventoryConflictError
		sc *ServiceCommunicationError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ii):
		return http.StatusBadRequest
	case errors.As(err, &ic):
		return http.StatusConflict
	case errors.As(err, &sc):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the externally safe message for an error. Remote internals
// are not leaked; the inventory conflict body is the one payload that passes
// through verbatim.
func PublicMessage(err error) string {
	var (
		nf *NotFoundError
		ii *InvalidInputError
		ic *InventoryConflictError
		sc *ServiceCommunicationError
	)
	switch {
	case errors.As(err, &nf):
		return nf.Message
	case errors.As(err, &ii):
		return ii.Message
	case errors.As(err, &ic):
		return ic.Body
	case errors.As(err, &sc):
		return sc.Error()
	default:
		return "an internal error occurred"
	}
}
