// Package docs registers the OpenAPI description served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register with an invited email", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid email"}, "403": {"description": "Not on the guest list"}}}},
        "/auth/admin": {"post": {"tags": ["auth"], "summary": "Sign in as an administrator", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "End the current session", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}},
        "/me": {"get": {"tags": ["auth"], "summary": "Current session", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/schedule": {"get": {"tags": ["schedule"], "summary": "Stage schedule grouped by date and time slot", "parameters": [{"type": "string", "name": "stage", "in": "query"}, {"type": "string", "name": "filter", "in": "query", "enum": ["all", "mine"]}, {"type": "string", "name": "categories", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown stage"}}}},
        "/talks/{slug}": {"get": {"tags": ["schedule"], "summary": "Talk detail", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/talks/{slug}/join": {"post": {"tags": ["schedule"], "summary": "Join a talk", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Not joinable"}, "502": {"description": "Remote failure"}}}},
        "/talks/{slug}/drop": {"post": {"tags": ["schedule"], "summary": "Leave a talk", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Not cancellable"}}}},
        "/me/talks": {"get": {"tags": ["schedule"], "summary": "Booked talks", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/me/talks.ics": {"get": {"tags": ["schedule"], "summary": "Booked talks as iCalendar", "produces": ["text/calendar"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/preferences/timezone": {
            "get": {"tags": ["preferences"], "summary": "Display timezone and choices", "parameters": [{"type": "string", "name": "detected", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["preferences"], "summary": "Change the display timezone", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown zone"}}}
        },
        "/leaderboard": {"get": {"tags": ["points"], "summary": "Individual and team standings", "parameters": [{"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/challenges": {"get": {"tags": ["points"], "summary": "Published challenges", "responses": {"200": {"description": "OK"}}}},
        "/challenges/{code}/claim": {"post": {"tags": ["points"], "summary": "Claim points with a code", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "502": {"description": "Rejected code"}}}},
        "/shop/products": {"get": {"tags": ["content"], "summary": "Shop products", "responses": {"200": {"description": "OK"}}}},
        "/speakers": {"get": {"tags": ["content"], "summary": "Speakers", "responses": {"200": {"description": "OK"}}}},
        "/site": {"get": {"tags": ["content"], "summary": "Site settings", "responses": {"200": {"description": "OK"}}}},
        "/warmup": {"get": {"tags": ["schedule"], "summary": "Warm-up exercises of stages not yet live", "responses": {"200": {"description": "OK"}}}},
        "/tickets/{username}": {"get": {"tags": ["tickets"], "summary": "Shared ticket", "parameters": [{"name": "username", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/report": {"get": {"tags": ["admin"], "summary": "Participation report", "security": [{"BearerAuth": []}], "parameters": [{"name": "sort", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}},
        "/healthz": {"get": {"tags": ["ops"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Virtual Conference API",
	Description:      "Schedule, bookings, points and content for a virtual conference.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
