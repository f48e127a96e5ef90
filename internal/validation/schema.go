package validation

// schemaDefinitions holds the shared day/document shapes, spliced into both
// top-level schemas below so the two can never drift apart.
const schemaDefinitions = `"definitions": {
    "day": {
      "type": "object",
      "required": ["day_number", "title", "content", "resources"],
      "properties": {
        "day_number": {"type": "integer", "minimum": 1},
        "title": {"type": "string", "minLength": 1, "maxLength": 80},
        "is_project_day": {"type": "boolean"},
        "project_data": {"$ref": "#/definitions/projectData"},
        "content": {"$ref": "#/definitions/document"},
        "resources": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["title", "url"],
            "properties": {
              "title": {"type": "string"},
              "url": {"type": "string"}
            }
          }
        },
        "estimated_hours": {"type": "number", "exclusiveMinimum": 0}
      },
      "if": {"properties": {"is_project_day": {"const": true}}, "required": ["is_project_day"]},
      "then": {"required": ["project_data"]}
    },
    "projectData": {
      "type": "object",
      "required": ["title", "description"],
      "properties": {
        "title": {"type": "string"},
        "description": {"type": "string"},
        "objectives": {"type": "array", "items": {"type": "string"}},
        "requirements": {"type": "array", "items": {"type": "string"}},
        "deliverables": {"type": "array", "items": {"type": "string"}},
        "evaluation_criteria": {"type": "array", "items": {"type": "string"}}
      }
    },
    "document": {
      "type": "object",
      "required": ["type", "content"],
      "properties": {
        "type": {"type": "string", "const": "doc"},
        "content": {"type": "array", "items": {"$ref": "#/definitions/node"}}
      }
    },
    "node": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"type": "string"},
        "attrs": {"type": "object"},
        "text": {"type": "string"},
        "marks": {"type": "array", "items": {"type": "object"}},
        "content": {"type": "array", "items": {"$ref": "#/definitions/node"}}
      }
    }
  }`

// curriculumSchema is the structural contract between the model prompt and
// the persistence layer. Key names are deliberately strict: a response
// using "title" instead of "curriculum_title" must fail, not be remapped.
const curriculumSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["curriculum_title", "curriculum_description", "days"],
  "properties": {
    "curriculum_title": {"type": "string", "minLength": 1, "maxLength": 100},
    "curriculum_description": {"type": "string", "minLength": 1, "maxLength": 500},
    "days": {
      "type": "array",
      "minItems": 1,
      "items": {"$ref": "#/definitions/day"}
    }
  },
  ` + schemaDefinitions + `
}`

// daySchema validates a single regenerated day object.
const daySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$ref": "#/definitions/day",
  ` + schemaDefinitions + `
}`
