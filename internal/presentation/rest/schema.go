package rest

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/aharo8014/Credit/internal/application/dto"
)

//go:embed schema/evaluation_request.json
var evaluationRequestSchema []byte

const rootField = "(root)"

// SchemaValidator checks request bodies against a compiled JSON Schema.
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

// NewEvaluationSchemaValidator compiles the embedded evaluation request schema.
func NewEvaluationSchemaValidator() (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(evaluationRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("compile evaluation schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate returns one violation per schema error, sorted by field. The body
// must already be well-formed JSON.
func (v *SchemaValidator) Validate(body []byte) ([]dto.FieldViolation, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]dto.FieldViolation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, dto.FieldViolation{
			Field:  violationField(desc),
			Reason: desc.Description(),
			Code:   codeSchemaViolation,
		})
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	return violations, nil
}

// violationField names the offending property. Errors such as "required" and
// "additional_property_not_allowed" are reported against the root object and
// carry the property name in their details.
func violationField(desc gojsonschema.ResultError) string {
	if desc.Field() != rootField {
		return desc.Field()
	}
	if p, ok := desc.Details()["property"].(string); ok && p != "" {
		return p
	}
	return desc.Field()
}
