package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateSchema checks that a field template's JSON schema compiles. An
// empty schema is valid and accepts any value.
func ValidateSchema(schemaJSON string) error {
	if schemaJSON == "" {
		return nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("field_schema.json", strings.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}
	if _, err := compiler.Compile("field_schema.json"); err != nil {
		return fmt.Errorf("failed to compile field schema: %w", err)
	}
	return nil
}

// ValidateFieldValue validates a JSON-encoded field response value against a
// field template's JSON schema. An empty schema accepts any value.
func ValidateFieldValue(schemaJSON string, valueJSON string) error {
	if schemaJSON == "" {
		return nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("field_schema.json", strings.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}
	sch, err := compiler.Compile("field_schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile field schema: %w", err)
	}

	var value interface{}
	if err := json.Unmarshal([]byte(valueJSON), &value); err != nil {
		return fmt.Errorf("field value is not valid JSON: %w", err)
	}

	if err := sch.Validate(value); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("field value failed schema validation: %v", validationErr)
		}
		return fmt.Errorf("field value failed schema validation: %w", err)
	}
	return nil
}
