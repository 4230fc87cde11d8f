package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchema(t *testing.T) {
	assert.NoError(t, ValidateSchema(""))
	assert.NoError(t, ValidateSchema(`{"type":"number","minimum":0}`))
	assert.NoError(t, ValidateSchema(`{"type":"string","enum":["ok","fail"]}`))

	assert.Error(t, ValidateSchema(`{"type": not-json}`))
	assert.Error(t, ValidateSchema(`{"type":"no-such-type"}`))
}

func TestValidateFieldValue(t *testing.T) {
	// An empty schema accepts anything, including non-JSON.
	assert.NoError(t, ValidateFieldValue("", "whatever"))

	schema := `{"type":"number","minimum":0}`
	assert.NoError(t, ValidateFieldValue(schema, "42.5"))
	assert.Error(t, ValidateFieldValue(schema, `"not a number"`))
	assert.Error(t, ValidateFieldValue(schema, "-1"))
	assert.Error(t, ValidateFieldValue(schema, "not json at all"))

	enum := `{"type":"string","enum":["low","medium","high"]}`
	assert.NoError(t, ValidateFieldValue(enum, `"medium"`))
	assert.Error(t, ValidateFieldValue(enum, `"extreme"`))
}
