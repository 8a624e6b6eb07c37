// Package api contains the Swagger description of the HTTP API.
//
// The paths mirror the swag annotations on the handlers.
package api

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
        "/": {
            "get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/root.Response"}}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/healthz": {
            "get": {"tags": ["General"], "summary": "Get health", "responses": {"204": {"description": "No Content"}, "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httperrors.HTTPError"}}}}
        },
        "/version": {
            "get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/transactions": {
            "get": {
                "tags": ["Transactions"],
                "summary": "Get transactions",
                "parameters": [
                    {"type": "string", "description": "Transactions at and after this date, YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "Transactions before and at this date, YYYY-MM-DD", "name": "until", "in": "query"},
                    {"type": "string", "description": "Filter by type, income or expense", "name": "type", "in": "query"},
                    {"type": "string", "description": "Filter by category name", "name": "category", "in": "query"},
                    {"type": "string", "description": "Filter by person name", "name": "person", "in": "query"},
                    {"type": "string", "description": "Filter by description. Accepts * as wildcard", "name": "description", "in": "query"},
                    {"type": "integer", "description": "The offset of the first Transaction returned", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "Maximum number of Transactions to return", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "tags": ["Transactions"],
                "summary": "Create transaction",
                "parameters": [{"description": "Transaction", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.TransactionCreate"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/v1/transactions/{id}": {
            "get": {"tags": ["Transactions"], "summary": "Get transaction", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Transactions"], "summary": "Update transaction", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Transactions"], "summary": "Delete transaction", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/v1/categories": {
            "get": {"tags": ["Categories"], "summary": "Get categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Categories"], "summary": "Create category", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/categories/{id}": {
            "get": {"tags": ["Categories"], "summary": "Get category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Categories"], "summary": "Update category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Categories"], "summary": "Delete category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/v1/persons": {
            "get": {"tags": ["Persons"], "summary": "Get persons", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Persons"], "summary": "Create person", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/persons/{id}": {
            "get": {"tags": ["Persons"], "summary": "Get person", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Persons"], "summary": "Update person", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Persons"], "summary": "Delete person", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/v1/months/{month}": {
            "get": {"tags": ["Months"], "summary": "Get monthly report", "parameters": [{"type": "string", "description": "The month in YYYY-MM format", "name": "month", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/analytics/categories/{name}/sum": {
            "get": {"tags": ["Analytics"], "summary": "Category sum", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "from", "in": "query", "required": true}, {"type": "string", "name": "until", "in": "query", "required": true}, {"type": "boolean", "name": "subtree", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/analytics/categories/{name}/series": {
            "get": {"tags": ["Analytics"], "summary": "Category series", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "from", "in": "query", "required": true}, {"type": "string", "name": "until", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/analytics/categories/{name}/percentage": {
            "get": {"tags": ["Analytics"], "summary": "Category percentage", "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "month", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/export": {
            "get": {"tags": ["Export"], "summary": "Export", "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        }
    },
    "definitions": {
        "httperrors.HTTPError": {"type": "object", "properties": {"error": {"type": "string"}}},
        "root.Response": {"type": "object", "properties": {"links": {"type": "object"}}},
        "v1.TransactionCreate": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "expense"},
                "date": {"type": "string", "example": "2023-10-05T00:00:00Z"},
                "amount": {"type": "string", "example": "100"},
                "description": {"type": "string", "example": "Dinner"},
                "categoryName": {"type": "string"},
                "personName": {"type": "string", "example": "Alice"},
                "deductions": {"type": "array", "items": {"type": "object", "properties": {"itemName": {"type": "string"}, "amount": {"type": "string"}}}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
