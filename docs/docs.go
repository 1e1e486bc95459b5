// Package docs registers the OpenAPI document served under /swagger.
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
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/register": {
            "post": {
                "summary": "Register a new user",
                "tags": ["auth"],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "registerRequest", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "user id", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "400": {"description": "missing field", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "409": {"description": "email taken", "schema": {"$ref": "#/definitions/handlers.Response"}}
                }
            }
        },
        "/login": {
            "post": {
                "summary": "Authenticate and open a session",
                "tags": ["auth"],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "loginRequest", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "projected user with session token", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "401": {"description": "incorrect email or password", "schema": {"$ref": "#/definitions/handlers.Response"}}
                }
            }
        },
        "/games": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Create a game owned by the caller",
                "tags": ["games"],
                "parameters": [{"in": "body", "name": "createGameRequest", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateGameRequest"}}],
                "responses": {"201": {"description": "game id", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/games/read": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Read games by id",
                "tags": ["games"],
                "parameters": [{"in": "body", "name": "readGamesRequest", "required": true, "schema": {"$ref": "#/definitions/handlers.ReadGamesRequest"}}],
                "responses": {"200": {"description": "games", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/games/search": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Search games by exact field match",
                "tags": ["games"],
                "responses": {"200": {"description": "games", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/games/update": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Update a game owned by the caller",
                "tags": ["games"],
                "parameters": [{"in": "body", "name": "updateGameRequest", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateGameRequest"}}],
                "responses": {
                    "200": {"description": "updated game", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "403": {"description": "not the owner", "schema": {"$ref": "#/definitions/handlers.Response"}}
                }
            }
        },
        "/games/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Join a game",
                "tags": ["membership"],
                "parameters": [{"in": "body", "name": "gameRequest", "required": true, "schema": {"$ref": "#/definitions/handlers.GameRequest"}}],
                "responses": {"200": {"description": "joined", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/games/withdraw": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Withdraw from a game",
                "tags": ["membership"],
                "parameters": [{"in": "body", "name": "gameRequest", "required": true, "schema": {"$ref": "#/definitions/handlers.GameRequest"}}],
                "responses": {"200": {"description": "withdrawn", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "Read the caller's profile",
                "tags": ["profile"],
                "responses": {"200": {"description": "profile", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "summary": "Delete the caller's account",
                "tags": ["membership"],
                "responses": {"200": {"description": "deleted user id", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/me/update": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Update the caller's profile",
                "tags": ["profile"],
                "responses": {"200": {"description": "profile", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/me/games": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "List owned, joined and orphaned games",
                "tags": ["membership"],
                "responses": {"200": {"description": "game ids", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        }
    },
    "definitions": {
        "handlers.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {}
            }
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "properties": {
                "email_address": {"type": "string"},
                "password": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "university": {"type": "string"},
                "username": {"type": "string"},
                "tennis": {"type": "boolean"},
                "frisbee": {"type": "boolean"},
                "soccer": {"type": "boolean"},
                "running": {"type": "boolean"},
                "basketball": {"type": "boolean"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "email_address": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.CreateGameRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "location": {"type": "string"},
                "time": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "handlers.ReadGamesRequest": {
            "type": "object",
            "properties": {
                "game_ids": {"type": "array", "items": {"type": "string"}},
                "owned": {"type": "boolean"}
            }
        },
        "handlers.UpdateGameRequest": {
            "type": "object",
            "properties": {
                "game_id": {"type": "string"},
                "fields": {"type": "object"},
                "append": {"type": "boolean"}
            }
        },
        "handlers.GameRequest": {
            "type": "object",
            "properties": {
                "game_id": {"type": "string"}
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
	Title:            "Sport Together API",
	Description:      "Accounts, pickup games and game membership.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
