package catalog

import (
	"fmt"

	"github.com/dukex/hrflow/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// ParamsSchema describes the actionParams object an automated node needs for action: every
// declared param is a required non-empty string.
func ParamsSchema(action models.AutomationAction) *models.JSONSchema {
	minLength := 1
	properties := make(map[string]*models.Property, len(action.Params))

	for _, p := range action.Params {
		properties[p] = &models.Property{
			Type:      "string",
			MinLength: &minLength,
		}
	}

	return &models.JSONSchema{
		Type:       "object",
		Title:      action.Label,
		Properties: properties,
		Required:   action.Params,
	}
}

// CheckParams returns the declared params of action that are absent or empty in params,
// in declaration order.
func CheckParams(action models.AutomationAction, params map[string]string) ([]string, error) {
	if params == nil {
		params = map[string]string{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(ParamsSchema(action)),
		gojsonschema.NewGoLoader(params),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check params of %s: %w", action.ID, err)
	}

	if result.Valid() {
		return nil, nil
	}

	failed := make(map[string]struct{}, len(result.Errors()))

	for _, e := range result.Errors() {
		if property, ok := e.Details()["property"].(string); ok && e.Type() == "required" {
			failed[property] = struct{}{}

			continue
		}

		failed[e.Field()] = struct{}{}
	}

	var missing []string

	for _, p := range action.Params {
		if _, ok := failed[p]; ok {
			missing = append(missing, p)
		}
	}

	return missing, nil
}
