package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{"type": "string", "maxLength": 5},
		},
		"required": []string{"message"},
	})
	require.NoError(t, err)
	return s
}

func TestSchema_ValidateBytes(t *testing.T) {
	s := messageSchema(t)

	tests := []struct {
		name      string
		doc       string
		valid     bool
		errorCode string
		field     string
	}{
		{name: "valid", doc: `{"message":"oi"}`, valid: true},
		{name: "missing message", doc: `{}`, errorCode: "REQUIRED", field: "message"},
		{name: "wrong type", doc: `{"message":42}`, errorCode: "INVALID_TYPE", field: "message"},
		{name: "too long", doc: `{"message":"123456"}`, errorCode: "STRING_LTE", field: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.ValidateBytes([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.True(t, res.HasCode(tt.errorCode), "codes: %v", res.Errors)
				assert.True(t, res.HasErrors(tt.field))
				assert.NotEmpty(t, res.GetErrorMessages())
			}
		})
	}
}

func TestSchema_MalformedDocument(t *testing.T) {
	s := messageSchema(t)

	_, err := s.ValidateBytes([]byte(`{"message":`))
	assert.Error(t, err)
}

func TestNewSchema_Invalid(t *testing.T) {
	_, err := NewSchema(map[string]interface{}{"type": 12})
	assert.Error(t, err)
}

func TestValidateEmailAndURL(t *testing.T) {
	assert.True(t, ValidateEmail("contato@glxpartners.com.br"))
	assert.False(t, ValidateEmail("contato@"))
	assert.True(t, ValidateURL("https://glxpartners.typeform.com/agendar"))
	assert.False(t, ValidateURL("ftp://glxpartners.com"))
	assert.False(t, ValidateURL("agendar"))
}
