// Package docs holds the generated Swagger specification for the
// extraction service. Normally produced by `swag init` from the
// @-annotations in handlers/handlers.go; committed here so the service
// can serve /swagger without a generation step at build time.
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
        "/extract": {
            "post": {
                "description": "Parses each carrier in upload order, reverses the per-carrier whitening and key-chain derivation, decrypts the data and decoy streams, and returns whichever one parses as a CRC-verified embedded file.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/octet-stream", "application/json"],
                "tags": ["Extraction"],
                "summary": "Extract a hidden payload from a sequence of carriers",
                "parameters": [
                    {"type": "file", "description": "Ordered carrier files", "name": "carriers", "in": "formData", "required": true},
                    {"type": "string", "description": "Password A", "name": "password_a", "in": "formData", "required": true},
                    {"type": "string", "description": "Password B", "name": "password_b", "in": "formData"},
                    {"type": "string", "description": "Password C", "name": "password_c", "in": "formData"},
                    {"type": "string", "description": "Bit density level", "name": "bit_selection", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Recovered payload"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "No file recovered", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns the health status of the extraction service",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "Service is healthy", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorDetail": {
            "type": "object",
            "properties": {
                "details": {"type": "object"},
                "message": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/models.ErrorDetail"},
                "success": {"type": "boolean"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "puffextract extraction service",
	Description:      "Recovers a hidden payload from a sequence of OpenPuff-watermarked carrier files.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
