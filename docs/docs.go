// Package docs registers the OpenAPI description served at /swagger/*. It is
// maintained by hand alongside the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/documents/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Get a document with its compliance status",
                "parameters": [
                    {"type": "string", "description": "Document ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DocumentView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/employees/{id}/documents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List an employee's documents with a compliance summary",
                "parameters": [
                    {"type": "string", "description": "Employee ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.EmployeeDocuments"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/employees/{id}/dependency-alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Check document dependencies for an employee",
                "parameters": [
                    {"type": "string", "description": "Employee ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/model.DependencyAlert"}}
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List the caller's notifications",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "boolean", "description": "Only unread notifications", "name": "unread", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.NotificationListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "patch": {
                "tags": ["notifications"],
                "summary": "Mark one of the caller's notifications as read",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Notification ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/notifier/run": {
            "post": {
                "description": "Runs synchronously and returns the cycle counts.",
                "produces": ["application/json"],
                "tags": ["notifier"],
                "summary": "Run one notification cycle now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notifier.CycleResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Checks database connectivity.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.Computed": {
            "type": "object",
            "properties": {
                "days_in_penalty": {"type": "integer"},
                "days_remaining": {"type": "integer"},
                "estimated_fine": {"type": "string"},
                "grace_days_remaining": {"type": "integer"},
                "status": {"type": "string", "enum": ["incomplete", "valid", "expiring_soon", "in_grace", "penalty_active"]}
            }
        },
        "model.DocumentView": {
            "type": "object",
            "properties": {
                "company_id": {"type": "string"},
                "compliance": {"$ref": "#/definitions/model.Computed"},
                "created_at": {"type": "string"},
                "document_number": {"type": "string"},
                "document_type": {"type": "string"},
                "employee_id": {"type": "string"},
                "employee_name": {"type": "string"},
                "expiry_date": {"type": "string"},
                "file_ref": {"type": "string"},
                "file_url": {"type": "string"},
                "id": {"type": "string"},
                "issue_date": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.DependencyAlert": {
            "type": "object",
            "properties": {
                "blocked_document_id": {"type": "string"},
                "blocked_type": {"type": "string"},
                "blocking_document_id": {"type": "string"},
                "blocking_type": {"type": "string"},
                "description": {"type": "string"},
                "message": {"type": "string"},
                "severity": {"type": "string", "enum": ["warning", "critical"]}
            }
        },
        "model.Notification": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "created_at": {"type": "string"},
                "entity_id": {"type": "string"},
                "entity_type": {"type": "string"},
                "id": {"type": "string"},
                "message": {"type": "string"},
                "read": {"type": "boolean"},
                "title": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "notifier.CycleResult": {
            "type": "object",
            "properties": {
                "duplicates": {"type": "integer"},
                "duration_ns": {"type": "integer"},
                "failed": {"type": "integer"},
                "inserted": {"type": "integer"},
                "row_errors": {"type": "integer"},
                "scanned": {"type": "integer"},
                "skipped": {"type": "integer"},
                "started_at": {"type": "string"}
            }
        },
        "service.EmployeeDocuments": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.DocumentView"}},
                "summary": {
                    "type": "object",
                    "properties": {
                        "by_status": {"type": "object", "additionalProperties": {"type": "integer"}},
                        "total": {"type": "integer"},
                        "total_fines": {"type": "string"}
                    }
                }
            }
        },
        "service.NotificationListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Notification"}},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Compliance Engine API",
	Description:      "Read-only access to computed document compliance, dependency alerts and notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
