package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upb/equipment-portal/repositories"
)

func TestNewDomainError(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeNotFound, "resource not found", baseErr)

	assert.Equal(t, ErrorTypeNotFound, domainErr.Type)
	assert.Equal(t, "resource not found", domainErr.Message)
	assert.Equal(t, baseErr, domainErr.Err)
	assert.NotNil(t, domainErr.Details)
}

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DomainError
		wantMsg string
	}{
		{
			name: "error with wrapped error",
			err: &DomainError{
				Type:    ErrorTypeNotFound,
				Message: "user not found",
				Err:     errors.New("db error"),
			},
			wantMsg: "not_found: user not found (db error)",
		},
		{
			name: "error without wrapped error",
			err: &DomainError{
				Type:    ErrorTypeValidation,
				Message: "invalid input",
			},
			wantMsg: "validation: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeInternal, "wrapped", baseErr)

	assert.ErrorIs(t, domainErr, baseErr)
}

func TestDomainError_Is(t *testing.T) {
	assert.True(t, errors.Is(ErrUserNotFound, ErrEquipmentNotFound), "same type matches")
	assert.False(t, errors.Is(ErrUserNotFound, ErrForbidden))
	assert.False(t, errors.Is(ErrUserNotFound, errors.New("not found")))

	wrapped := fmt.Errorf("loading user: %w", ErrUserNotFound)
	assert.True(t, errors.Is(wrapped, ErrUserNotFound))
}

func TestDomainError_WithDetail(t *testing.T) {
	withID := ErrUserNotFound.WithDetail("id", "123")

	assert.Equal(t, "123", withID.Details["id"])
	assert.Empty(t, ErrUserNotFound.Details, "shared sentinel must not be mutated")
	assert.Equal(t, ErrorTypeNotFound, withID.Type)
}

func TestErrorTypeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"not found", ErrUserNotFound, IsNotFoundError},
		{"validation", ErrAssigneeNotFound, IsValidationError},
		{"forbidden", ErrForbidden, IsForbiddenError},
		{"conflict", ErrDuplicateEmail, IsConflictError},
		{"internal", ErrDatabaseError, IsInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.True(t, tt.checker(fmt.Errorf("context: %w", tt.err)))
			assert.False(t, tt.checker(errors.New("plain")))
		})
	}

	assert.False(t, IsNotFoundError(ErrDatabaseError))
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeConflict, GetErrorType(ErrDuplicateSerial))
	assert.Equal(t, ErrorType(""), GetErrorType(errors.New("plain")))
}

func TestGetErrorDetails(t *testing.T) {
	err := ErrInvalidRole.WithDetail("role", "root")
	assert.Equal(t, "root", GetErrorDetails(err)["role"])
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}

func TestFromRepository(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		wantIsErr error
	}{
		{"nil", nil, "", nil},
		{"not found", fmt.Errorf("get: %w", repositories.ErrNotFound), ErrorTypeNotFound, ErrUserNotFound},
		{"duplicate", repositories.ErrDuplicate, ErrorTypeConflict, ErrDuplicateEmail},
		{"other", dbErr, ErrorTypeInternal, dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromRepository(tt.err, ErrUserNotFound, ErrDuplicateEmail)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantType, GetErrorType(err))
			assert.ErrorIs(t, err, tt.wantIsErr)
		})
	}

	t.Run("not found without mapping is internal", func(t *testing.T) {
		err := FromRepository(repositories.ErrNotFound, nil, nil)
		assert.True(t, IsInternalError(err))
	})
}
