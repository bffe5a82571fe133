// Package api holds the generated swagger specification.
// Regenerate with: swag init -g internal/api/http/router.go -o api
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Taskden",
            "url": "https://github.com/taskden/taskden"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a new user",
                "responses": {
                    "201": {"description": "message, user{username,email,token}"},
                    "400": {"description": "Missing fields"},
                    "422": {"description": "Username or email taken"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "message, token"},
                    "400": {"description": "Missing fields or unknown user"},
                    "401": {"description": "Wrong password"}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "user"},
                    "401": {"description": "Not authenticated"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "message"}
                }
            }
        },
        "/todo/create": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "Create a todo",
                "responses": {
                    "201": {"description": "message, todo"},
                    "400": {"description": "Missing title or description"},
                    "401": {"description": "Not authenticated"}
                }
            }
        },
        "/todo": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "List todos",
                "responses": {
                    "200": {"description": "message, todo[]"},
                    "401": {"description": "Not authenticated"}
                }
            }
        },
        "/todo/update/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "Update a todo",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "message, updatedTodo"},
                    "400": {"description": "Invalid fields"},
                    "401": {"description": "Not authenticated"},
                    "404": {"description": "No such todo for this user"}
                }
            }
        },
        "/todo/delete/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "message"},
                    "401": {"description": "Not authenticated"},
                    "404": {"description": "No such todo for this user"}
                }
            }
        },
        "/ai/subtasks": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["AI"],
                "summary": "Generate subtasks",
                "responses": {
                    "200": {"description": "subtasks[{text}]"},
                    "400": {"description": "Missing title or description"},
                    "401": {"description": "Not authenticated"},
                    "500": {"description": "Model failure or unusable output"}
                }
            }
        },
        "/ai/parse": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["AI"],
                "summary": "Parse free text",
                "responses": {
                    "200": {"description": "todo{title,date?,recurrence?}"},
                    "400": {"description": "Missing input"},
                    "401": {"description": "Not authenticated"},
                    "500": {"description": "Model failure or unusable output"}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "status, uptime, version"}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "status, uptime, version"},
                    "503": {"description": "datastore unreachable"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Taskden API",
	Description:      "Task-management REST API with cookie-based sessions and generative-AI assisted todo creation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
