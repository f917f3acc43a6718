// Package docs holds the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "AdminSession": {"type": "apiKey", "in": "cookie", "name": "admin_session"},
        "Bearer": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "paths": {
        "/availability/unavailable-dates": {
            "get": {
                "tags": ["availability"],
                "summary": "Blocked dates plus the nights of accepted stays",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Sorted YYYY-MM-DD strings", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/availability/quote": {
            "get": {
                "tags": ["availability"],
                "summary": "Price a stay",
                "parameters": [
                    {"name": "checkIn", "in": "query", "required": true, "type": "string"},
                    {"name": "checkOut", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Quote"}, "400": {"description": "Invalid range"}}
            }
        },
        "/bookings": {
            "post": {
                "tags": ["bookings"],
                "summary": "Request a stay",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "booking", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Stored as PENDING"},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Dates not available"},
                    "503": {"description": "Availability busy, retry"}
                }
            }
        },
        "/content": {
            "get": {
                "tags": ["content"],
                "summary": "Landing page content",
                "responses": {"200": {"description": "Content with rendered markdown"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {"200": {"description": "Session cookie set"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Clear the session cookie", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"], "summary": "Current session",
                "security": [{"AdminSession": []}, {"Bearer": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "No session"}}
            }
        },
        "/admin/bookings": {
            "get": {
                "tags": ["admin"], "summary": "List bookings, newest first",
                "security": [{"AdminSession": []}, {"Bearer": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["PENDING", "ACCEPTED", "CANCELLED"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/bookings/{id}": {
            "get": {
                "tags": ["admin"], "summary": "Get a booking",
                "security": [{"AdminSession": []}, {"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["admin"], "summary": "Accept or cancel a pending booking",
                "security": [{"AdminSession": []}, {"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "decision", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Already decided or dates taken"}
                }
            },
            "delete": {
                "tags": ["admin"], "summary": "Delete a booking",
                "security": [{"AdminSession": []}, {"Bearer": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "deleted is false when nothing was removed"}}
            }
        },
        "/admin/content": {
            "put": {"tags": ["admin"], "summary": "Update landing page content", "security": [{"AdminSession": []}, {"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/pricing": {
            "put": {"tags": ["admin"], "summary": "Replace default and seasonal prices", "security": [{"AdminSession": []}, {"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/blocked-dates": {
            "get": {"tags": ["admin"], "summary": "Manual blocks", "security": [{"AdminSession": []}, {"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["admin"], "summary": "Replace all manual blocks", "security": [{"AdminSession": []}, {"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admin"], "summary": "Block a date (idempotent)", "security": [{"AdminSession": []}, {"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/blocked-dates/{date}": {
            "delete": {
                "tags": ["admin"], "summary": "Unblock a date (idempotent)",
                "security": [{"AdminSession": []}, {"Bearer": []}],
                "parameters": [{"name": "date", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "CreateBookingRequest": {
            "type": "object",
            "required": ["name", "email", "guests", "checkIn", "checkOut"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "guests": {"type": "integer", "minimum": 1},
                "checkIn": {"type": "string", "example": "2025-07-01"},
                "checkOut": {"type": "string", "example": "2025-07-05"},
                "message": {"type": "string"}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["ACCEPTED", "CANCELLED"]},
                "customEmailMessage": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Villa Booking API",
	Description:      "Availability, booking requests and site content for a single vacation rental.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
