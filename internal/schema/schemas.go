// Package schema validates untrusted JSON at both ends of the pipeline:
// the raw execution recording coming in, and the model-produced structured
// data going out. All checks are all-or-nothing; nothing is coerced.
package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const rawExecutionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["actions"],
  "properties": {
    "feature_name": {"type": "string"},
    "scenario_name": {"type": "string"},
    "target": {"type": "string"},
    "started_at": {"type": "string"},
    "finished_at": {"type": "string"},
    "actions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["kind"],
        "properties": {
          "kind": {"type": "string", "minLength": 1},
          "target": {"type": ["string", "object", "array"]},
          "value": {"type": "string"},
          "timestamp": {"type": ["string", "number"]},
          "description": {"type": "string"},
          "element_text": {"type": "string"},
          "element_tag": {"type": "string"},
          "attributes": {
            "type": "object",
            "additionalProperties": {"type": "string"}
          },
          "selectors": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["type", "value"],
              "properties": {
                "type": {"type": "string"},
                "value": {"type": "string"},
                "priority": {"type": ["string", "number"]}
              }
            }
          },
          "output": {
            "type": "object",
            "properties": {
              "url": {"type": "string"},
              "final_url": {"type": "string"},
              "title": {"type": "string"},
              "status_code": {"type": "integer"},
              "ok": {"type": "boolean"}
            }
          },
          "tab_id": {"type": "string"},
          "force_new_tab": {"type": "boolean"}
        }
      }
    }
  }
}`

const stepFieldsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["category", "description"],
  "properties": {
    "category": {
      "type": "string",
      "enum": ["navigation", "interaction", "validation", "other"]
    },
    "description": {"type": "string", "minLength": 1},
    "action": {"type": "string", "minLength": 1}
  },
  "additionalProperties": false
}`

const summaryFieldsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["intent", "categories", "step_count"],
  "properties": {
    "intent": {"type": "string", "minLength": 1},
    "categories": {
      "type": "array",
      "items": {
        "type": "string",
        "enum": ["navigation", "interaction", "validation", "other"]
      }
    },
    "step_count": {"type": "integer", "minimum": 0}
  },
  "additionalProperties": false
}`

const inputParametersSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["parameters"],
  "properties": {
    "parameters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type", "required"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "type": {"type": "string", "minLength": 1},
          "required": {"type": "boolean"},
          "example": {},
          "description": {"type": "string"}
        }
      }
    }
  },
  "additionalProperties": false
}`

const workflowDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["metadata", "steps", "summary"],
  "properties": {
    "metadata": {
      "type": "object",
      "required": ["workflow_id", "source", "generated_at", "model", "step_count", "input_schema"],
      "properties": {
        "workflow_id": {"type": "string", "minLength": 1},
        "feature_name": {"type": "string"},
        "scenario_name": {"type": "string"},
        "source": {"type": "string", "minLength": 1},
        "generated_at": {"type": "string", "minLength": 1},
        "model": {"type": "string", "minLength": 1},
        "step_count": {"type": "integer", "minimum": 1},
        "input_schema": {"type": "array"}
      }
    },
    "steps": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["index", "kind", "category", "enriched_description"],
        "properties": {
          "index": {"type": "integer", "minimum": 0},
          "kind": {"type": "string", "minLength": 1},
          "category": {
            "type": "string",
            "enum": ["navigation", "interaction", "validation", "other"]
          },
          "enriched_description": {"type": "string", "minLength": 1}
        }
      }
    },
    "summary": {
      "type": "object",
      "required": ["intent", "categories", "step_count"],
      "properties": {
        "intent": {"type": "string", "minLength": 1},
        "categories": {"type": "array"},
        "step_count": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var (
	compiledRawExecution    *gojsonschema.Schema
	compiledStepFields      *gojsonschema.Schema
	compiledSummaryFields   *gojsonschema.Schema
	compiledInputParameters *gojsonschema.Schema
	compiledDocument        *gojsonschema.Schema
)

func init() {
	compiledRawExecution = mustCompile(rawExecutionSchema)
	compiledStepFields = mustCompile(stepFieldsSchema)
	compiledSummaryFields = mustCompile(summaryFieldsSchema)
	compiledInputParameters = mustCompile(inputParametersSchema)
	compiledDocument = mustCompile(workflowDocumentSchema)
}

func mustCompile(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("schema: invalid embedded schema: %v", err))
	}
	return s
}

// firstViolation runs the compiled schema against the document loader and
// returns the field path and description of the first violation, or ok.
func firstViolation(s *gojsonschema.Schema, doc gojsonschema.JSONLoader) (field, desc string, ok bool, err error) {
	result, err := s.Validate(doc)
	if err != nil {
		return "", "", false, err
	}
	if result.Valid() {
		return "", "", true, nil
	}
	e := result.Errors()[0]
	return e.Field(), e.Description(), false, nil
}
