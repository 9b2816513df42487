package prefabs

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// MaterialsSchema validates materials.yaml.
var MaterialsSchema = mustCompileSchema("schemas/materials.schema.json")

func mustCompileSchema(name string) *jsonschema.Schema {
	data, err := SchemasFS.ReadFile(name)
	if err != nil {
		panic("prefabs: read schema " + name + ": " + err.Error())
	}
	return jsonschema.MustCompileString(name, string(data))
}

// ValidateYAML decodes a YAML document into plain JSON values and validates it.
func ValidateYAML(schema *jsonschema.Schema, data []byte) error {
	if schema == nil {
		return fmt.Errorf("prefabs: nil schema")
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	// Round-trip through JSON so numbers and maps have the shapes the
	// validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
