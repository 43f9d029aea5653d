// Package pgerr classifies PostgreSQL errors returned by lib/pq.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE codes the service reacts to
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeForeignKeyViolation  = pq.ErrorCode("23503")
	CodeExclusionViolation   = pq.ErrorCode("23P01")
	CodeSerializationFailure = pq.ErrorCode("40001")
	CodeDeadlockDetected     = pq.ErrorCode("40P01")
)

// Code returns the SQLSTATE of err, or "" when err is not a *pq.Error
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation reports a UNIQUE constraint failure
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsForeignKeyViolation reports a missing referenced row
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsExclusionViolation reports an EXCLUDE constraint failure
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsSerializationFailure reports errors after which the whole transaction may be retried
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
