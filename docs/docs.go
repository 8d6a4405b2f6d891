// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/plastics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plastics"],
                "summary": "List warehouse plastics",
                "parameters": [
                    {"type": "string", "description": "Article substring", "name": "article", "in": "query"},
                    {"type": "string", "description": "Material substring", "name": "material", "in": "query"},
                    {"type": "string", "description": "Color substring", "name": "color", "in": "query"},
                    {"type": "string", "description": "Warehouse substring", "name": "warehouse", "in": "query"},
                    {"type": "number", "description": "Exact thickness", "name": "thickness", "in": "query"},
                    {"type": "number", "description": "Minimum thickness", "name": "thickness_min", "in": "query"},
                    {"type": "number", "description": "Maximum thickness", "name": "thickness_max", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PlasticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/plastics/exports": {
            "post": {
                "produces": ["application/json"],
                "tags": ["plastics"],
                "summary": "Archive a CSV export to object storage",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ExportResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/materials": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List plastic materials",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List bot users",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/plastics/export.csv": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["plastics"],
                "summary": "Export warehouse plastics as CSV",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/plastics/export.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["plastics"],
                "summary": "Export warehouse plastics as PDF",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/bot/webhook": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bot"],
                "summary": "Chat-bot webhook",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/bot.Reply"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthStatus"}},
                    "206": {"description": "Partial Content", "schema": {"$ref": "#/definitions/handlers.HealthStatus"}}
                }
            }
        }
    },
    "definitions": {
        "bot.Reply": {
            "type": "object",
            "properties": {
                "chat_id": {"type": "integer"},
                "method": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "details": {"type": "object", "additionalProperties": {"type": "string"}},
                        "message": {"type": "string"}
                    }
                }
            }
        },
        "handlers.HealthStatus": {
            "type": "object",
            "properties": {
                "services": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "handlers.PlasticsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Plastic"}}
            }
        },
        "models.ExportResult": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "object": {"type": "string"},
                "rows": {"type": "integer"},
                "url": {"type": "string"}
            }
        },
        "models.Plastic": {
            "type": "object",
            "properties": {
                "arrival_at": {"type": "string", "x-nullable": true},
                "arrival_date": {"type": "string", "x-nullable": true},
                "article": {"type": "string", "x-nullable": true},
                "color": {"type": "string", "x-nullable": true},
                "comment": {"type": "string", "x-nullable": true},
                "employee_id": {"type": "integer", "x-nullable": true},
                "employee_name": {"type": "string", "x-nullable": true},
                "id": {"type": "integer"},
                "length": {"type": "number", "x-nullable": true},
                "material": {"type": "string", "x-nullable": true},
                "thickness": {"type": "number", "x-nullable": true},
                "warehouse": {"type": "string", "x-nullable": true},
                "width": {"type": "number", "x-nullable": true}
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
	Title:            "Plastics Warehouse API",
	Description:      "Search and export of warehouse plastics stock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
