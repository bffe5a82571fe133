package genaix

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DecodeStrict validates raw model output against the schema it was asked to
// follow, then unmarshals it into v. Models return prose when they feel like
// it; any deviation from the schema is an ErrBadResponse, never a panic or a
// silently wrong struct.
func DecodeStrict(raw string, schema *Schema, v any) error {
	if schema == nil {
		return fmt.Errorf("%w: no schema to validate against", ErrBadResponse)
	}

	schemaDoc, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("%w: encode schema: %w", ErrBadResponse, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("response.json", strings.NewReader(string(schemaDoc))); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	compiled, err := compiler.Compile("response.json")
	if err != nil {
		return fmt.Errorf("%w: compile schema: %w", ErrBadResponse, err)
	}

	var instance any
	if err := json.Unmarshal([]byte(raw), &instance); err != nil {
		return fmt.Errorf("%w: not valid JSON: %w", ErrBadResponse, err)
	}

	if err := compiled.Validate(instance); err != nil {
		return fmt.Errorf("%w: %s", ErrBadResponse, firstValidationCause(err))
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

// firstValidationCause digs out the most specific leaf cause so we log
// something more useful than the root "doesn't validate" message.
func firstValidationCause(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation != "" {
		return ve.InstanceLocation + ": " + ve.Message
	}
	return ve.Message
}
