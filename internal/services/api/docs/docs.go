// Package docs holds the OpenAPI document served under /api/docs.
// Regenerate it from the handler annotations with
// swag init --v3.1 -g internal/services/api/api.go -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.1.0",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "components": {
    "securitySchemes": {
      "bearer": {"type": "http", "scheme": "bearer"}
    },
    "schemas": {
      "Component": {
        "type": "object",
        "properties": {
          "uid": {"type": "string"},
          "component_id": {"type": "string", "example": "VP-001"},
          "name": {"type": "string"},
          "url_link": {"type": "string"},
          "change_type": {"type": "string", "enum": ["New", "Updated"]},
          "description": {"type": "string"},
          "category": {"type": "string", "enum": ["Visual Programming", "Experience Manager", "Data Manager"]},
          "type": {"type": "string"},
          "created_at": {"type": "string", "format": "date-time"},
          "updated_at": {"type": "string", "format": "date-time"}
        }
      },
      "RequestSpec": {
        "type": "object",
        "required": ["method", "url"],
        "properties": {
          "method": {"type": "string", "enum": ["GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"]},
          "url": {"type": "string"},
          "query_params": {"type": "array", "items": {"$ref": "#/components/schemas/KV"}},
          "headers": {"type": "array", "items": {"$ref": "#/components/schemas/KV"}},
          "auth": {"type": "object"},
          "body": {"type": "object"}
        }
      },
      "KV": {
        "type": "object",
        "properties": {
          "key": {"type": "string"},
          "value": {"type": "string"},
          "enabled": {"type": "boolean"}
        }
      },
      "ResponseView": {
        "type": "object",
        "properties": {
          "status_code": {"type": "integer"},
          "status_class": {"type": "string"},
          "headers": {"type": "object", "additionalProperties": {"type": "string"}},
          "body": {"type": "string"},
          "pretty": {"type": "string"},
          "kind": {"type": "string", "enum": ["json", "xml", "html", "text"]},
          "title": {"type": "string"},
          "elapsed_ms": {"type": "number"},
          "size": {"type": "integer"}
        }
      }
    }
  },
  "security": [{"bearer": []}],
  "paths": {
    "/components": {
      "get": {"tags": ["components"], "summary": "List components", "responses": {"200": {"description": "items and page"}}},
      "post": {
        "tags": ["components"], "summary": "Create a component",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Component"}}}},
        "responses": {"201": {"description": "created"}, "422": {"description": "type not allowed for category"}}
      }
    },
    "/components/catalog": {
      "get": {"tags": ["components"], "summary": "Categories and their allowed types", "responses": {"200": {"description": "catalog"}}}
    },
    "/components/categories/{category}/types": {
      "get": {
        "tags": ["components"], "summary": "Distinct stored types of a category",
        "parameters": [{"name": "category", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "types"}}
      }
    },
    "/components/{uid}": {
      "parameters": [{"name": "uid", "in": "path", "required": true, "schema": {"type": "string"}}],
      "get": {"tags": ["components"], "summary": "Get a component", "responses": {"200": {"description": "ok"}, "404": {"description": "not found"}}},
      "patch": {"tags": ["components"], "summary": "Partially update a component", "responses": {"200": {"description": "ok"}, "404": {"description": "not found"}}},
      "delete": {"tags": ["components"], "summary": "Delete a component", "responses": {"204": {"description": "deleted"}, "404": {"description": "not found"}}}
    },
    "/imports/preview": {
      "post": {"tags": ["imports"], "summary": "Parse batch import text", "responses": {"200": {"description": "parsed components"}}}
    },
    "/imports/commit": {
      "post": {"tags": ["imports"], "summary": "Create parsed components one by one", "responses": {"200": {"description": "per item results"}}}
    },
    "/dm-links": {
      "post": {"tags": ["dm-links"], "summary": "Find form_data_id values and map them to links", "responses": {"200": {"description": "links"}, "400": {"description": "invalid JSON document"}}}
    },
    "/dm-links/mapping": {
      "get": {"tags": ["dm-links"], "summary": "Loaded mapping info", "responses": {"200": {"description": "mapping"}}}
    },
    "/requests": {
      "get": {"tags": ["api-client"], "summary": "List saved requests", "responses": {"200": {"description": "requests"}}},
      "post": {"tags": ["api-client"], "summary": "Save a request", "responses": {"201": {"description": "saved"}}}
    },
    "/requests/execute": {
      "post": {
        "tags": ["api-client"], "summary": "Send an unsaved request",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/RequestSpec"}}}},
        "responses": {
          "200": {"description": "response", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ResponseView"}}}},
          "502": {"description": "connection error"},
          "504": {"description": "timed out"}
        }
      }
    },
    "/requests/{uid}": {
      "parameters": [{"name": "uid", "in": "path", "required": true, "schema": {"type": "string"}}],
      "get": {"tags": ["api-client"], "summary": "Get a saved request", "responses": {"200": {"description": "ok"}}},
      "put": {"tags": ["api-client"], "summary": "Replace a saved request", "responses": {"200": {"description": "ok"}}},
      "delete": {"tags": ["api-client"], "summary": "Delete a saved request", "responses": {"204": {"description": "deleted"}}}
    },
    "/requests/{uid}/execute": {
      "parameters": [{"name": "uid", "in": "path", "required": true, "schema": {"type": "string"}}],
      "post": {"tags": ["api-client"], "summary": "Send a saved request and store its status", "responses": {"200": {"description": "response"}}}
    },
    "/audit-trail/query": {
      "post": {"tags": ["audit-trail"], "summary": "Query a remote audit trail", "responses": {"200": {"description": "upstream answer"}}}
    },
    "/activity": {
      "get": {"tags": ["activity"], "summary": "Newest activity events", "responses": {"200": {"description": "events"}, "503": {"description": "activity log disabled"}}}
    },
    "/meta/health": {"get": {"tags": ["meta"], "summary": "Health check", "security": [], "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["meta"], "summary": "Readiness probe", "security": [], "responses": {"200": {"description": "ok"}}}},
    "/meta/version": {"get": {"tags": ["meta"], "summary": "Build and version info", "security": [], "responses": {"200": {"description": "ok"}}}},
    "/meta/service": {"get": {"tags": ["meta"], "summary": "Service info and uptime", "security": [], "responses": {"200": {"description": "ok"}}}}
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "deploytrack API",
	Description:      "Component inventory, batch import, DM link lookup, API client and audit trail queries.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
