// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msabenda/api-guardian-game/internal/models"
)

func TestGetValidatorSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

func TestValidateDecision(t *testing.T) {
	tests := []struct {
		name     string
		decision models.Decision
		valid    bool
	}{
		{"block decision", models.Decision{ID: 1, Action: models.ActionBlock, RealAnomaly: true}, true},
		{"pass decision", models.Decision{ID: 2, Action: models.ActionPass}, true},
		{"zero id is legitimate", models.Decision{ID: 0, Action: models.ActionBlock}, true},
		{"missing action", models.Decision{ID: 3}, false},
		{"unknown action", models.Decision{ID: 4, Action: "maybe"}, false},
		{"negative id", models.Decision{ID: -1, Action: models.ActionBlock}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(&tc.decision)
			if tc.valid {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}

func TestValidateStructErrorDetails(t *testing.T) {
	decision := models.Decision{ID: 5, Action: "maybe"}

	verr := ValidateStruct(&decision)
	require.NotNil(t, verr)
	require.Len(t, verr.Errors(), 1)

	fieldErr := verr.Errors()[0]
	assert.Equal(t, "Action", fieldErr.Field())
	assert.Equal(t, "oneof", fieldErr.Tag())
	assert.Equal(t, "maybe", fieldErr.Value())
	assert.Contains(t, fieldErr.Error(), "must be one of")
}

func TestToAPIErrorSingleField(t *testing.T) {
	verr := ValidateStruct(&models.Decision{ID: 6, Action: "nope"})
	require.NotNil(t, verr)

	apiErr := verr.ToAPIError()
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Message, "Action must be one of")
	assert.Equal(t, "Action", apiErr.Details["field"])
	assert.Equal(t, "oneof", apiErr.Details["tag"])
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	verr := ValidateStruct(&models.Decision{ID: -3})
	require.NotNil(t, verr)
	require.Len(t, verr.Errors(), 2)

	apiErr := verr.ToAPIError()
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 2)
	assert.Contains(t, apiErr.Message, ";")
}

func TestRequestValidationErrorMessage(t *testing.T) {
	verr := ValidateStruct(&models.Decision{ID: -3})
	require.NotNil(t, verr)

	msg := verr.Error()
	assert.Contains(t, msg, "ID must be at least 0")
	assert.Contains(t, msg, "Action is required")
}

func TestTranslateErrorTemplates(t *testing.T) {
	type probe struct {
		IP    string `validate:"omitempty,ip"`
		Count int    `validate:"omitempty,max=10"`
		Name  string `validate:"omitempty,min=3"`
	}

	verr := ValidateStruct(&probe{IP: "not-an-ip"})
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "IP must be a valid IP address")

	verr = ValidateStruct(&probe{Count: 11})
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "Count must be at most 10")

	verr = ValidateStruct(&probe{Name: "ab"})
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "Name must be at least 3 characters")
}
