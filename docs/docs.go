// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/sessions/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Verifies the bearer token, creates or backfills the local user and stores the session.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Establish a session from an ID token",
                "parameters": [
                    {
                        "description": "Display name, required the first time a user signs in",
                        "name": "body",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/handler.sessionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/envelope.Failure"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/envelope.Failure"}},
                    "405": {"description": "Method Not Allowed", "schema": {"$ref": "#/definitions/envelope.Failure"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/envelope.Failure"}}
                }
            }
        },
        "/logout/": {
            "post": {
                "description": "Deletes the server-side session. Succeeds when there is no session.",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Message"}},
                    "405": {"description": "Method Not Allowed", "schema": {"$ref": "#/definitions/envelope.Failure"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/envelope.Failure"}}
                }
            }
        }
    },
    "definitions": {
        "envelope.Failure": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "envelope.Message": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "handler.sessionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 50, "example": "Alice"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean", "example": true},
                "created": {"type": "boolean", "example": false},
                "user": {"$ref": "#/definitions/handler.sessionUserResponse"}
            }
        },
        "handler.sessionUserResponse": {
            "type": "object",
            "properties": {
                "firebase_uid": {"type": "string", "example": "x1Yz8fQ2"},
                "name": {"type": "string", "example": "Alice"},
                "email": {"type": "string", "example": "alice@example.com"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Account Portal API",
	Description:      "Session establishment backed by identity-provider token verification.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
