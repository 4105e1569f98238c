// Package docs holds the Swagger 2.0 document served under /swagger.
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
        "/api/v1/admin/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "All rooms plus every puzzle with its room theme",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DashboardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/hints": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a hint to a puzzle",
                "parameters": [
                    {"description": "Hint", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateHintRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Hint"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/puzzles": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a puzzle to a room",
                "parameters": [
                    {"description": "Puzzle", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.PuzzleInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Puzzle"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/rooms": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "An empty image_url gets a placeholder image labelled with the theme",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a room",
                "parameters": [
                    {"description": "Room", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RoomInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Room"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/rooms/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Accepts a JSON export as the request body, or a multipart \"file\" upload (.json, or .csv with room fields as form values)",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Import a room",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Room"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/rooms/{id}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Room, puzzles (with answers) and hints as JSON, or puzzles as CSV with format=csv",
                "produces": ["application/json", "text/csv"],
                "tags": ["admin"],
                "summary": "Export a room",
                "parameters": [
                    {"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "json or csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.RoomExport"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/sessions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "date_time is a datetime-local value in the venue timezone",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Schedule a session",
                "parameters": [
                    {"description": "Session", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Session"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "description": "Authenticate a user and return a JWT token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Login data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "description": "Create a player account and return a JWT token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new player",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/me/sessions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Sessions the caller registered for, newest first",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "My sessions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.UserSession"}}}
                }
            }
        },
        "/api/v1/rooms": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "All escape rooms ordered by theme",
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "List rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Room"}}}
                }
            }
        },
        "/api/v1/rooms/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "A room with its upcoming sessions, soonest first",
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Room details",
                "parameters": [
                    {"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RoomDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Puzzles of the session's room with hints and solved flags",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Session view",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.SessionView"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}/answers": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Checks the answer, logs the attempt and completes the session once every puzzle is solved",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Submit an answer",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Answer", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SubmitAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.SubmitResult"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}/attempts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Every logged attempt of the session in submission order",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Attempt history",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PuzzleAttempt"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}/register": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Enrolls the caller as a participant of the session",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Register for a session",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Participant"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.AuthResponse": {"type": "object", "properties": {"token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIs..."}}},
        "handlers.CreateHintRequest": {
            "type": "object",
            "required": ["puzzle_id", "text"],
            "properties": {"puzzle_id": {"type": "integer", "example": 3}, "text": {"type": "string", "example": "Look under the carpet"}}
        },
        "handlers.CreateSessionRequest": {
            "type": "object",
            "required": ["date_time", "room_id"],
            "properties": {"date_time": {"type": "string", "example": "2026-11-02T18:30"}, "room_id": {"type": "integer", "example": 1}}
        },
        "handlers.DashboardResponse": {
            "type": "object",
            "properties": {
                "puzzles": {"type": "array", "items": {"$ref": "#/definitions/services.PuzzleSummary"}},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/models.Room"}}
            }
        },
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string", "example": "something went wrong"}}},
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string", "example": "password123"}, "username": {"type": "string", "example": "player1"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "minLength": 6, "example": "password123"},
                "username": {"type": "string", "maxLength": 100, "minLength": 3, "example": "player1"}
            }
        },
        "handlers.RoomDetailResponse": {
            "type": "object",
            "properties": {
                "room": {"$ref": "#/definitions/models.Room"},
                "upcoming_sessions": {"type": "array", "items": {"$ref": "#/definitions/models.Session"}}
            }
        },
        "handlers.SubmitAnswerRequest": {
            "type": "object",
            "required": ["puzzle_id"],
            "properties": {"answer": {"type": "string", "example": "Treasure"}, "puzzle_id": {"type": "integer", "example": 3}}
        },
        "models.Hint": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "puzzle_id": {"type": "integer"}, "text": {"type": "string"}}
        },
        "models.Participant": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "joined_at": {"type": "string"}, "session_id": {"type": "integer"}, "user_id": {"type": "integer"}}
        },
        "models.Puzzle": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "hints": {"type": "array", "items": {"$ref": "#/definitions/models.Hint"}},
                "id": {"type": "integer"},
                "room_id": {"type": "integer"},
                "sequence_number": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "models.PuzzleAttempt": {
            "type": "object",
            "properties": {
                "attempted_at": {"type": "string"},
                "id": {"type": "integer"},
                "is_solved": {"type": "boolean"},
                "puzzle_id": {"type": "integer"},
                "session_id": {"type": "integer"},
                "submitted_answer": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "models.Room": {
            "type": "object",
            "properties": {
                "capacity": {"type": "integer"},
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "difficulty": {"type": "string"},
                "duration": {"type": "integer"},
                "id": {"type": "integer"},
                "image_url": {"type": "string"},
                "theme": {"type": "string"}
            }
        },
        "models.Session": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "date_time": {"type": "string"},
                "id": {"type": "integer"},
                "room_id": {"type": "integer"},
                "status": {"type": "string", "enum": ["upcoming", "completed"]}
            }
        },
        "services.PuzzleExport": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "description": {"type": "string"},
                "hints": {"type": "array", "items": {"type": "string"}},
                "sequence_number": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "services.PuzzleInput": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "description": {"type": "string"},
                "room_id": {"type": "integer"},
                "sequence_number": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "services.PuzzleSummary": {
            "type": "object",
            "properties": {"description": {"type": "string"}, "puzzle_id": {"type": "integer"}, "theme": {"type": "string"}}
        },
        "services.RoomExport": {
            "type": "object",
            "properties": {
                "capacity": {"type": "integer"},
                "description": {"type": "string"},
                "difficulty": {"type": "string"},
                "duration": {"type": "integer"},
                "image_url": {"type": "string"},
                "puzzles": {"type": "array", "items": {"$ref": "#/definitions/services.PuzzleExport"}},
                "theme": {"type": "string"}
            }
        },
        "services.RoomInput": {
            "type": "object",
            "properties": {
                "capacity": {"type": "integer"},
                "description": {"type": "string"},
                "difficulty": {"type": "string"},
                "duration": {"type": "integer"},
                "image_url": {"type": "string"},
                "theme": {"type": "string"}
            }
        },
        "services.SessionView": {
            "type": "object",
            "properties": {
                "puzzles": {"type": "array", "items": {"$ref": "#/definitions/models.Puzzle"}},
                "session": {"$ref": "#/definitions/models.Session"},
                "solved_puzzle_ids": {"type": "array", "items": {"type": "integer"}},
                "theme": {"type": "string"}
            }
        },
        "services.SubmitResult": {
            "type": "object",
            "properties": {"attempt_id": {"type": "integer"}, "session_status": {"type": "string"}, "solved": {"type": "boolean"}}
        },
        "services.UserSession": {
            "type": "object",
            "properties": {"date_time": {"type": "string"}, "session_id": {"type": "integer"}, "status": {"type": "string"}, "theme": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Enter \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Escape Room API",
	Description:      "Booking and gameplay tracking for escape-room sessions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
