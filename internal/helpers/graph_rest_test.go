package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGraphRestErrorParsesODataEnvelope(t *testing.T) {
	raw := []byte(`{"error":{"code":"Authorization_RequestDenied","message":"Insufficient privileges"}}`)

	err := newGraphRestError(403, raw)

	assert.Equal(t, 403, err.StatusCode)
	assert.Equal(t, "Authorization_RequestDenied", err.Code)
	assert.Equal(t, "Insufficient privileges", err.Message)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Authorization_RequestDenied")
}

func TestNewGraphRestErrorKeepsRawBodyOnNonJSON(t *testing.T) {
	err := newGraphRestError(502, []byte("Bad Gateway"))

	assert.Equal(t, 502, err.StatusCode)
	assert.Empty(t, err.Code)
	assert.Equal(t, "Bad Gateway", err.Message)
}

func TestNewGraphRestErrorEmptyBody(t *testing.T) {
	err := newGraphRestError(429, nil)

	assert.Equal(t, 429, err.StatusCode)
	assert.Empty(t, err.Code)
}
