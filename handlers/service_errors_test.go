package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/equipment-portal/services"
	"github.com/upb/equipment-portal/utils"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedError   string
		expectedMessage string
	}{
		{
			name:            "not found error",
			err:             services.ErrUserNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedError:   utils.CodeNotFound,
			expectedMessage: "user not found",
		},
		{
			name:            "wrapped not found error",
			err:             fmt.Errorf("loading: %w", services.ErrEquipmentNotFound),
			expectedStatus:  http.StatusNotFound,
			expectedError:   utils.CodeNotFound,
			expectedMessage: "equipment not found",
		},
		{
			name:            "validation error",
			err:             services.ErrAssigneeNotFound.WithDetail("assigned_to", "x"),
			expectedStatus:  http.StatusBadRequest,
			expectedError:   utils.CodeInvalidRequest,
			expectedMessage: "assigned user does not exist",
		},
		{
			name:            "forbidden error",
			err:             services.ErrAdminOnlyField,
			expectedStatus:  http.StatusForbidden,
			expectedError:   utils.CodeForbidden,
			expectedMessage: "only administrators can change email or role",
		},
		{
			name:            "conflict error",
			err:             services.ErrDuplicateEmail,
			expectedStatus:  http.StatusConflict,
			expectedError:   utils.CodeConflict,
			expectedMessage: "email already exists",
		},
		{
			name:            "internal error hides the cause",
			err:             services.FromRepository(errors.New("pq: password authentication failed"), nil, nil),
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   utils.CodeInternal,
			expectedMessage: "An internal error occurred",
		},
		{
			name:            "unknown error",
			err:             errors.New("some unknown error"),
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   utils.CodeInternal,
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleServiceError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response utils.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

			assert.Equal(t, tt.expectedError, response.Error)
			assert.Equal(t, tt.expectedMessage, response.Message)
		})
	}
}

func TestHandleServiceErrorWithDetails(t *testing.T) {
	err := services.ErrAssigneeNotFound.WithDetail("assigned_to", "abc")

	w := httptest.NewRecorder()
	HandleServiceError(w, err, zap.NewNop())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response utils.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "abc", response.Details["assigned_to"])
}

func TestHandleServiceErrorNil(t *testing.T) {
	w := httptest.NewRecorder()

	HandleServiceError(w, nil, zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleValidationError(t *testing.T) {
	logger := zap.NewNop()

	t.Run("field errors become details", func(t *testing.T) {
		err := &utils.ValidationError{
			Message: "Validation failed",
			Fields: map[string]string{
				"email": "email is required",
				"name":  "name is required",
			},
		}

		w := httptest.NewRecorder()
		HandleValidationError(w, err, logger)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		assert.Equal(t, "Validation failed", response.Message)
		assert.Equal(t, "email is required", response.Details["email"])
		assert.Equal(t, "name is required", response.Details["name"])
	})

	t.Run("generic error", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleValidationError(w, errors.New("generic validation error"), logger)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "generic validation error", response.Message)
	})
}
