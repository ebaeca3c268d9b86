// Package docs registra el documento OpenAPI de la API en swag (lo sirve /swagger/doc.json).
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
        "/": {
            "post": {
                "tags": [
                    "proxy"
                ],
                "summary": "Proxy de completion",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Pedido de chat",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "405": {
                        "description": "Method not allowed"
                    },
                    "500": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/monkeys": {
            "get": {
                "tags": [
                    "monkeys"
                ],
                "summary": "Listar monos",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/monkeys.Monkey"
                            }
                        }
                    }
                }
            }
        },
        "/monkeys/{monkeyID}": {
            "get": {
                "tags": [
                    "monkeys"
                ],
                "summary": "Obtener mono",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "monkeyID",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "odId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/monkeys.Monkey"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "monkeys"
                ],
                "summary": "Guardar mono",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": false
                    },
                    {
                        "name": "monkeyID",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "odId"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Registro",
                        "schema": {
                            "$ref": "#/definitions/monkeys.Monkey"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/monkeys.Monkey"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "403": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/me/monkey": {
            "get": {
                "tags": [
                    "monkeys"
                ],
                "summary": "Mi mono",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/monkeys.Monkey"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/relations": {
            "get": {
                "tags": [
                    "relations"
                ],
                "summary": "Listar relaciones propias",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/relations.Relation"
                            }
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/relations/{friendID}": {
            "put": {
                "tags": [
                    "relations"
                ],
                "summary": "Guardar relación",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    },
                    {
                        "name": "friendID",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "odId del otro mono"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Relación",
                        "schema": {
                            "$ref": "#/definitions/relations.Relation"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/relations.Relation"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": [
                    "notifications"
                ],
                "summary": "Bandeja propia",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/notifications.Notification"
                            }
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/notifications/{toID}": {
            "post": {
                "tags": [
                    "notifications"
                ],
                "summary": "Enviar notificación",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    },
                    {
                        "name": "toID",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Dueño destino"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Notificación",
                        "schema": {
                            "$ref": "#/definitions/notifications.Notification"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/notifications.Notification"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/notifications/{notifID}": {
            "delete": {
                "tags": [
                    "notifications"
                ],
                "summary": "Descartar notificación",
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    },
                    {
                        "name": "notifID",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "id"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/companion/personality": {
            "post": {
                "tags": [
                    "companion"
                ],
                "summary": "Describir personalidad",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Rasgos",
                        "schema": {
                            "$ref": "#/definitions/companion.personalityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/companion.personalityResponse"
                        }
                    }
                }
            }
        },
        "/companion/welcome": {
            "post": {
                "tags": [
                    "companion"
                ],
                "summary": "Saludo de regreso",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Ausencia",
                        "schema": {
                            "$ref": "#/definitions/companion.WelcomeInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/companion.welcomeResponse"
                        }
                    },
                    "502": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/companion/interaction": {
            "post": {
                "tags": [
                    "companion"
                ],
                "summary": "Interacción entre monos",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Con quién y qué",
                        "schema": {
                            "$ref": "#/definitions/companion.interactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/companion.InteractionOutcome"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/errorResponse"
                        }
                    }
                }
            }
        },
        "/ws/monkeys": {
            "get": {
                "tags": [
                    "realtime"
                ],
                "summary": "Stream de monos (websocket)",
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    }
                }
            }
        },
        "/ws/notifications": {
            "get": {
                "tags": [
                    "realtime"
                ],
                "summary": "Stream de la bandeja propia (websocket)",
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "type": "string",
                        "description": "Usuario (modo dev)",
                        "required": true
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    }
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "monkeys.Ref": {
            "type": "object",
            "properties": {
                "odId": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "ownerName": {
                    "type": "string"
                }
            }
        },
        "monkeys.Mood": {
            "type": "object",
            "properties": {
                "happiness": {
                    "type": "integer"
                },
                "loneliness": {
                    "type": "integer"
                },
                "energy": {
                    "type": "integer"
                }
            }
        },
        "monkeys.Traits": {
            "type": "object",
            "properties": {
                "adventureSpirit": {
                    "type": "integer"
                },
                "empathy": {
                    "type": "integer"
                },
                "independence": {
                    "type": "integer"
                },
                "resilience": {
                    "type": "integer"
                },
                "security": {
                    "type": "integer"
                },
                "selfWorth": {
                    "type": "integer"
                },
                "socialSkill": {
                    "type": "integer"
                },
                "trust": {
                    "type": "integer"
                }
            }
        },
        "monkeys.ActivityEntry": {
            "type": "object",
            "properties": {
                "icon": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "integer"
                },
                "type": {
                    "type": "string"
                },
                "withMonkey": {
                    "$ref": "#/definitions/monkeys.Ref"
                }
            }
        },
        "monkeys.PendingMessage": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "integer"
                }
            }
        },
        "monkeys.Monkey": {
            "type": "object",
            "properties": {
                "odId": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "ownerName": {
                    "type": "string"
                },
                "personality": {
                    "type": "string"
                },
                "traits": {
                    "$ref": "#/definitions/monkeys.Traits"
                },
                "mood": {
                    "$ref": "#/definitions/monkeys.Mood"
                },
                "activityLog": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/monkeys.ActivityEntry"
                    }
                },
                "status": {
                    "type": "string"
                },
                "lastActive": {
                    "type": "integer"
                },
                "lastVisitTime": {
                    "type": "integer"
                },
                "lastUpdated": {
                    "type": "integer"
                },
                "hibernatingSince": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "integer"
                },
                "pendingMessage": {
                    "$ref": "#/definitions/monkeys.PendingMessage"
                }
            }
        },
        "relations.Relation": {
            "type": "object",
            "properties": {
                "friendId": {
                    "type": "string"
                },
                "friendName": {
                    "type": "string"
                },
                "level": {
                    "type": "integer"
                },
                "sharedMemory": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "integer"
                }
            }
        },
        "notifications.Notification": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "fromMonkey": {
                    "$ref": "#/definitions/monkeys.Ref"
                },
                "summary": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "integer"
                }
            }
        },
        "companion.personalityRequest": {
            "type": "object",
            "properties": {
                "traits": {
                    "$ref": "#/definitions/monkeys.Traits"
                }
            }
        },
        "companion.personalityResponse": {
            "type": "object",
            "properties": {
                "personality": {
                    "type": "string"
                }
            }
        },
        "companion.WelcomeInput": {
            "type": "object",
            "properties": {
                "hoursAway": {
                    "type": "number"
                },
                "events": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "companion.welcomeResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "companion.interactionRequest": {
            "type": "object",
            "properties": {
                "otherId": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "companion.InteractionOutcome": {
            "type": "object",
            "properties": {
                "dialogue": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "speaker": {
                                "type": "string"
                            },
                            "action": {
                                "type": "string"
                            },
                            "text": {
                                "type": "string"
                            }
                        }
                    }
                },
                "outcome": {
                    "type": "string"
                },
                "relationChange": {
                    "type": "integer"
                },
                "newSharedMemory": {
                    "type": "string"
                },
                "summary": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                }
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
	Title:            "monkey-social API",
	Description:      "Proxy de completion, almacenamiento de monos/relaciones/notificaciones y endpoints de compañía.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
