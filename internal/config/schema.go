package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const schemaURL = "orgagenda.schema.json"

//go:embed orgagenda.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON schema config files are checked against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateFile checks a TOML or YAML config file against the schema. Schema
// violations are returned as joined *ValidationError values; read and decode
// failures are returned as is.
func ValidateFile(fsys afero.Fs, path string) error {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	doc, err := decodeDocument(path, data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var errs []error
		collectSchemaErrors(&errs, ve)
		return errors.Join(errs...)
	}
	return nil
}

// decodeDocument decodes a config file into plain JSON values.
func decodeDocument(path string, data []byte) (any, error) {
	raw := map[string]any{}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	} else if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}

	// Round-trip through JSON so numbers and dates take JSON types.
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: instancePath(ve.InstanceLocation),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// instancePath renders a schema instance location in the same form as
// validator paths: "/keywords/completed/0" becomes "keywords.completed[0]".
func instancePath(ptr string) string {
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(ptr, "#"), "/") {
		if seg == "" {
			continue
		}
		seg = strings.NewReplacer("~1", "/", "~0", "~").Replace(seg)
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
