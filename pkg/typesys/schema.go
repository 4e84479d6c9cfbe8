package typesys

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaConverter builds a Converter that accepts a value only if it
// satisfies the given JSON Schema document. The value is round-tripped
// through encoding/json so Go structs and map[string]interface{} values
// validate identically.
func SchemaConverter(schema map[string]interface{}) (Converter, error) {
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("typesys: invalid schema: %w", err)
	}
	loader := gojsonschema.NewBytesLoader(schemaBytes)

	return func(value interface{}) (interface{}, error) {
		valueBytes, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("typesys: cannot serialize value: %w", err)
		}
		result, err := gojsonschema.Validate(loader, gojsonschema.NewBytesLoader(valueBytes))
		if err != nil {
			return nil, fmt.Errorf("typesys: schema evaluation failed: %w", err)
		}
		if !result.Valid() {
			descriptions := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				descriptions = append(descriptions, e.String())
			}
			return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, descriptions)
		}
		return value, nil
	}, nil
}
