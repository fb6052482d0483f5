package ai

import (
	"fmt"
	"strings"

	"resumeforge/internal/errors"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas used to validate raw model output before it is unmarshaled.
// Structured output narrows what the model can emit but does not guarantee
// it, so responses are treated as untrusted input.

const parseResponseSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "contact": {
      "type": "object",
      "properties": {
        "phone": {"type": "string"},
        "email": {"type": "string"},
        "location": {"type": "string"},
        "linkedin": {"type": "string"},
        "portfolio": {"type": "string"}
      },
      "required": ["phone", "email", "location"]
    },
    "summary": {"type": "string"},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "company": {"type": "string"},
          "jobTitle": {"type": "string"},
          "dates": {"type": "string"},
          "description": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["company", "jobTitle", "dates", "description"]
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "dates": {"type": "string"},
          "gpa": {"type": "string"}
        },
        "required": ["institution", "degree", "dates"]
      }
    },
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "category": {"type": "string"},
          "details": {"type": "string"}
        },
        "required": ["category", "details"]
      }
    },
    "certifications": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["name", "contact", "summary", "experience", "education", "skills"]
}`

const scoreResponseSchema = `{
  "type": "object",
  "properties": {
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "suggestions": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "keywords": {
      "type": "object",
      "properties": {
        "matched": {"type": "array", "items": {"type": "string"}},
        "missing": {"type": "array", "items": {"type": "string"}}
      }
    }
  },
  "required": ["score", "suggestions"]
}`

// validateResponseJSON checks a raw model response against a JSON Schema
func validateResponseJSON(schemaJSON, responseJSON string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewStringLoader(responseJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewAIError(errors.ErrCodeMalformedResponse,
			"AI response is not valid JSON", err)
	}

	if result.Valid() {
		return nil
	}

	descriptions := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		descriptions = append(descriptions, fmt.Sprintf("%s: %s", field, desc.Description()))
	}

	return errors.NewAIError(errors.ErrCodeMalformedResponse,
		"AI response does not match the expected schema", nil).
		WithContext("violations", strings.Join(descriptions, "; "))
}
