package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"buildaide/core/costengine"
	apperrors "buildaide/internal/errors"
)

const costParametersSchema = `{
  "type": "object",
  "required": ["projectType", "area"],
  "properties": {
    "projectType":     {"type": "string", "minLength": 1},
    "area":            {"type": "number"},
    "materialQuality": {"type": "string"},
    "timeline":        {"type": "string"},
    "zipCode":         {"type": "string"},
    "laborWorkers":    {"type": "number"},
    "laborHours":      {"type": "number"},
    "laborRate":       {"type": "number"},
    "equipmentCost":   {"type": "number"},
    "overheadCost":    {"type": "number"}
  }
}`

const expenseSchema = `{
  "type": "object",
  "required": ["description", "amount"],
  "properties": {
    "description": {"type": "string", "minLength": 1},
    "amount":      {"type": ["number", "string"]},
    "category":    {"type": "string"},
    "projectName": {"type": "string"},
    "incurredOn":  {"type": "string"}
  }
}`

var (
	costParametersValidator = mustSchema(costParametersSchema)
	expenseValidator        = mustSchema(expenseSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// validateBody checks body against schema. Failures are input errors
// carrying message with the schema violations as the cause.
func validateBody(schema *gojsonschema.Schema, body []byte, message string) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.Wrap(apperrors.TypeInput, message, fmt.Errorf("malformed JSON: %w", err))
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return apperrors.Wrap(apperrors.TypeInput, message, fmt.Errorf("%s", strings.Join(violations, "; ")))
}

func validateCostParameters(body []byte) error {
	return validateBody(costParametersValidator, body, costengine.MsgInvalidParameters)
}

func validateExpense(body []byte) error {
	return validateBody(expenseValidator, body, "invalid expense")
}
