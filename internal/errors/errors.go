package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

// NotFoundError marks a missing match in one of the external systems
// (partner, product, inventory item). It is never fatal to the process;
// callers either skip the item or stop the workflow.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// NoValidProductsError is returned when none of an order's line items
// matched a known product, so no sales order may be created.
type NoValidProductsError struct {
	Message string
}

func (e *NoValidProductsError) Error() string {
	return e.Message
}

func NewNoValidProductsError(message string) *NoValidProductsError {
	return &NoValidProductsError{Message: message}
}

func IsNoValidProductsError(err error) (*NoValidProductsError, bool) {
	if nve, ok := err.(*NoValidProductsError); ok {
		return nve, true
	}
	return nil, false
}

// RemoteFaultError carries the serialized fault object the ERP returned
// inside an otherwise successful RPC response.
type RemoteFaultError struct {
	Fault string
}

func (e *RemoteFaultError) Error() string {
	return fmt.Sprintf("remote fault: %s", e.Fault)
}

func NewRemoteFaultError(fault string) *RemoteFaultError {
	return &RemoteFaultError{Fault: fault}
}

func IsRemoteFaultError(err error) (*RemoteFaultError, bool) {
	if rfe, ok := err.(*RemoteFaultError); ok {
		return rfe, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	if ue, ok := err.(*UnauthorizedError); ok {
		return ue, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	if ie, ok := err.(*InternalError); ok {
		return ie, true
	}
	return nil, false
}
