package save

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed world.schema.json
var worldSchemaJSON string

var (
	schemaOnce  sync.Once
	worldSchema *jsonschema.Schema
	schemaErr   error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		worldSchema, schemaErr = jsonschema.CompileString("world.schema.json", worldSchemaJSON)
	})
	return worldSchema, schemaErr
}

// ValidateWorld checks a raw world record against the embedded schema.
// Unknown keys pass; wrong types do not.
func ValidateWorld(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling world schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}
