package encoding

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/errors"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://shparse/parsed-command.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the raw JSON Schema for the JSON output format
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks a JSON document against the output schema
func ValidateJSON(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return errors.NewSchemaError(err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return errors.NewSchemaError(err)
	}

	if err := schema.Validate(doc); err != nil {
		return errors.NewSchemaError(err)
	}
	return nil
}

// Validate encodes pc as JSON and checks it against the output schema
func Validate(pc *ast.ParsedCommand) error {
	data, err := MarshalJSON(pc)
	if err != nil {
		return errors.NewEncodeError("json", err)
	}
	return ValidateJSON(data)
}
