package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a non-positive monetary amount was supplied.
var ErrInvalidAmount = errors.New("amount must be strictly positive")

// ErrInvalidRange indicates an inverted date range was supplied.
var ErrInvalidRange = errors.New("invalid date range")

// ErrUnknownAccount indicates an account name that could not be resolved.
var ErrUnknownAccount = errors.New("unknown account")

// ErrCorruptBackup indicates a backup payload that could not be decoded.
var ErrCorruptBackup = errors.New("corrupt backup payload")

// ErrStoreWrite indicates the underlying store rejected a write.
var ErrStoreWrite = errors.New("store write failed")

// ErrForbidden indicates the caller lacks the capability required for a privileged operation.
var ErrForbidden = errors.New("operation not permitted")
