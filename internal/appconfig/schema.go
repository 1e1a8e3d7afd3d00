package appconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema constrains the merged configuration before a run.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "input":              { "type": "string" },
    "outputDir":          { "type": "string" },
    "plotDir":            { "type": "string" },
    "baselineVersion":    { "type": "string" },
    "treatmentVersion":   { "type": "string" },
    "alpha":              { "type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1 },
    "forensicBenchmarks": { "type": "array", "items": { "type": "string", "minLength": 1 }, "uniqueItems": true },
    "jitterSeed":         { "type": "integer" },
    "plots":              { "type": "boolean" },
    "htmlReport":         { "type": "boolean" },
    "logFile":            { "type": "string" },
    "debug":              { "type": "boolean" }
  }
}`

var compiledSchema *gojsonschema.Schema

func schema() (*gojsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(configSchema))
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	compiledSchema = s
	return s, nil
}

// Validate checks the configuration against the config schema and rejects
// a baseline equal to the treatment.
func (c Config) Validate() error {
	s, err := schema()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("config does not match schema: %s", strings.Join(msgs, "; "))
	}
	if c.Baseline() == c.Treatment() {
		return fmt.Errorf("baselineVersion and treatmentVersion must differ (both %q)", c.Baseline())
	}
	return nil
}
