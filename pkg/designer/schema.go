package designer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// graphDocumentSchema describes the export format. Nodes and edges may carry extra display
// members; the document itself has exactly "nodes" and "edges".
const graphDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["nodes", "edges"],
  "additionalProperties": false,
  "properties": {
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "position", "data"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"type": "string", "enum": ["startNode", "taskNode", "approvalNode", "automatedNode", "endNode"]},
          "position": {
            "type": "object",
            "required": ["x", "y"],
            "properties": {
              "x": {"type": "number"},
              "y": {"type": "number"}
            }
          },
          "data": {
            "type": "object",
            "properties": {
              "type": {"type": "string", "enum": ["start", "task", "approval", "automated", "end"]},
              "label": {"type": "string"}
            }
          }
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "source", "target"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "source": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var loadGraphSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(graphDocumentSchema))
})

// checkShape validates text against the export document schema.
func checkShape(text string) error {
	schema, err := loadGraphSchema()
	if err != nil {
		return fmt.Errorf("failed to compile graph schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return malformed("invalid JSON", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}

		return malformed(strings.Join(details, "; "), nil)
	}

	return nil
}
