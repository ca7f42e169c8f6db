package testcase

import (
	_ "embed"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

var fileSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("testcase.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("testcase.schema.json")
}

// validateSchema checks the structural shape of a decoded document
// before it is mapped onto TestCase.
func validateSchema(document any) error {
	return fileSchema.Validate(document)
}
