package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_CommandsSchema(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name: "empty list",
			data: `[]`,
		},
		{
			name: "full descriptor",
			data: `[{"name": "ping", "description": "p", "command_return_text": "pong"}]`,
		},
		{
			name: "passthrough keys allowed",
			data: `[{"name": "roll", "description": "r", "options": [{"type": 3, "name": "dice", "description": "d"}]}]`,
		},
		{
			name:      "object root",
			data:      `{"name": "ping", "description": "p"}`,
			wantError: true,
			errorMsg:  "(root)",
		},
		{
			name:      "string root",
			data:      `"ping"`,
			wantError: true,
			errorMsg:  "type",
		},
		{
			name:      "non-object item",
			data:      `[1, 2]`,
			wantError: true,
			errorMsg:  "/0",
		},
		{
			name:      "missing description",
			data:      `[{"name": "ping"}]`,
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "numeric response text",
			data:      `[{"name": "ping", "description": "p", "command_return_text": 5}]`,
			wantError: true,
			errorMsg:  "command_return_text",
		},
		{
			name:      "empty name",
			data:      `[{"name": "", "description": "p"}]`,
			wantError: true,
			errorMsg:  "minLength",
		},
		{
			name:      "invalid JSON",
			data:      `[{"name": }]`,
			wantError: true,
			errorMsg:  "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), CommandsSchema)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	err = v.ValidateBytes([]byte(`[]`), "schemas/missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}
