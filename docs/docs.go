// Package docs registers the committed OpenAPI specification for the task API.
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
        "/tasks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "List all tasks ordered by start date, with isOverdue recomputed",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/model.Task"}
                        }
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Create a task",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/model.Task"}
                    },
                    "400": {
                        "description": "Validation failure",
                        "schema": {"$ref": "#/definitions/handler.FieldError"}
                    }
                }
            }
        },
        "/tasks/check-overdue": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Run the on-demand overdue check and optionally notify",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/notify.Result"}
                    }
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Get a task by id",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/model.Task"}
                    },
                    "404": {"description": "Task not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Partially update a task",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/model.Task"}
                    },
                    "400": {
                        "description": "Validation failure",
                        "schema": {"$ref": "#/definitions/handler.FieldError"}
                    },
                    "404": {"description": "Task not found"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete a task (idempotent)",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "handler.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.Task": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "segment": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "progress": {"type": "integer"},
                "status": {"type": "string", "enum": ["todo", "in-progress", "done"]},
                "description": {"type": "string"},
                "assignee": {"type": "string"},
                "isOverdue": {"type": "boolean"}
            }
        },
        "notify.Result": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "message": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Gantt Board API",
	Description:      "API for managing scheduled tasks with list and Gantt timeline views.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
