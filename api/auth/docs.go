// Package auth holds the OpenAPI document served at /swagger. Keep it in step
// with the handler annotations in internal/auth/http.
package auth

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/identity"
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
        "/auth/register": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Register",
                "description": "Creates a customer account and signs it in. Tokens are returned as accessToken and refreshToken cookies.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "id of the new user",
                        "schema": {
                            "$ref": "#/definitions/authsdk.IDResponse"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/authsdk.RegisterRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/auth/login": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Login",
                "description": "Signs in with email and password. An unknown email and a wrong password produce the same error.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "id of the signed in user",
                        "schema": {
                            "$ref": "#/definitions/authsdk.IDResponse"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/authsdk.LoginRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/auth/self": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "Current user",
                "description": "Returns the signed in user. With expand=tenant, managers and admins also get their tenant.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "public user",
                        "schema": {
                            "$ref": "#/definitions/authsdk.User"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "set to tenant to include the tenant",
                        "name": "expand",
                        "in": "query"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Refresh tokens",
                "description": "Rotates the refresh token from the refreshToken cookie. The presented token is revoked and can never be used again.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "id of the user",
                        "schema": {
                            "$ref": "#/definitions/authsdk.IDResponse"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    }
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Logout",
                "description": "Revokes the session named by the refreshToken cookie, if any, and clears both cookies.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "empty object",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/tenants": {
            "get": {
                "tags": [
                    "Tenants"
                ],
                "summary": "List tenants",
                "description": "Lists every tenant. Admin only.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "tenants",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/authsdk.Tenant"
                            }
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Tenants"
                ],
                "summary": "Create tenant",
                "description": "Creates a tenant. Admin only.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "created tenant",
                        "schema": {
                            "$ref": "#/definitions/authsdk.Tenant"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Tenant",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/authsdk.CreateTenantRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/tenants/{id}": {
            "get": {
                "tags": [
                    "Tenants"
                ],
                "summary": "Get tenant",
                "description": "Admins read any tenant, managers only their own.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "tenant",
                        "schema": {
                            "$ref": "#/definitions/authsdk.Tenant"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Tenant ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Tenants"
                ],
                "summary": "Delete tenant",
                "description": "Deletes a tenant. Its managers are detached, not deleted. Admin only.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "deleted"
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Tenant ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Tenants"
                ],
                "summary": "Update tenant",
                "description": "Changes name and/or address. Omitted fields stay as they are.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "updated tenant",
                        "schema": {
                            "$ref": "#/definitions/authsdk.Tenant"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Tenant id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/authsdk.UpdateTenantRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/users": {
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Create user",
                "description": "Creates an admin, or a manager bound to an existing tenant. Admin only.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "created user",
                        "schema": {
                            "$ref": "#/definitions/authsdk.User"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "User",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/authsdk.CreateUserRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "List users",
                "description": "Pages through all users. q matches email, first name and last name case-insensitively.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "one page of users",
                        "schema": {
                            "$ref": "#/definitions/authsdk.UserList"
                        }
                    },
                    "400": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "default": 1,
                        "description": "Page, from 1",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 10,
                        "description": "Rows per page, 1-100",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "default": "id",
                        "description": "id or createdAt",
                        "name": "sort",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "default": "desc",
                        "description": "asc or desc",
                        "name": "order",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "admin, manager or customer",
                        "name": "role",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Search text, up to 200 characters",
                        "name": "q",
                        "in": "query"
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/users/{id}": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Get user",
                "description": "Returns any user by id. Admin only.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "user",
                        "schema": {
                            "$ref": "#/definitions/authsdk.User"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete user",
                "description": "Deletes a user and every session they hold. Admin only.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "deleted"
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "404": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Admin"
                ],
                "summary": "Update user",
                "description": "Changes names, email, password or tenant. Omitted fields stay as they are; tenantId null detaches a manager. Role cannot be changed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "updated user",
                        "schema": {
                            "$ref": "#/definitions/authsdk.User"
                        }
                    },
                    "400": {
                        "description": "invalid input or email already registered",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "401": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "403": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "404": {
                        "description": "user or tenant not found",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    },
                    "500": {
                        "description": "error envelope",
                        "schema": {
                            "$ref": "#/definitions/authsdk.APIError"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/authsdk.UpdateUserRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "CookieAuth": []
                    },
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/.well-known/jwks.json": {
            "get": {
                "tags": [
                    "well-known"
                ],
                "summary": "Get JWKS",
                "description": "Returns the JSON Web Key Set that verifies RS256 access tokens.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "The JSON Web Key Set",
                        "schema": {
                            "$ref": "#/definitions/authsdk.JWKSResponse"
                        }
                    }
                }
            }
        },
        "/livez": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "description": "Always 200 while the process is serving.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {
                            "$ref": "#/definitions/authsdk.HealthResponse"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "description": "503 until the database answers and a verification key is loaded.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {
                            "$ref": "#/definitions/authsdk.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "status, uptime, version, checks",
                        "schema": {
                            "$ref": "#/definitions/authsdk.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "authsdk.APIError": {
            "type": "object",
            "properties": {
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httpx.ErrorItem"
                    }
                }
            }
        },
        "httpx.ErrorItem": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "msg": {
                    "type": "string"
                }
            }
        },
        "authsdk.IDResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                }
            }
        },
        "authsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "authsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "authsdk.CreateTenantRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                }
            }
        },
        "authsdk.CreateUserRequest": {
            "type": "object",
            "properties": {
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "admin",
                        "manager"
                    ]
                },
                "tenantId": {
                    "type": "integer"
                }
            }
        },
        "authsdk.UpdateTenantRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 100,
                    "example": "Acme Ltd"
                },
                "address": {
                    "type": "string",
                    "maxLength": 255,
                    "example": "2 Main St"
                }
            }
        },
        "authsdk.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string",
                    "example": "jane@example.com"
                },
                "password": {
                    "type": "string",
                    "minLength": 8,
                    "maxLength": 128
                },
                "tenantId": {
                    "type": "integer",
                    "x-nullable": true,
                    "description": "null detaches the user from its tenant"
                }
            }
        },
        "authsdk.Tenant": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                }
            }
        },
        "authsdk.User": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "admin",
                        "manager",
                        "customer"
                    ]
                },
                "tenantId": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "tenant": {
                    "$ref": "#/definitions/authsdk.Tenant"
                }
            }
        },
        "authsdk.UserList": {
            "type": "object",
            "properties": {
                "rows": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/authsdk.User"
                    }
                },
                "page": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "sort": {
                    "type": "string",
                    "enum": [
                        "id",
                        "createdAt"
                    ]
                },
                "order": {
                    "type": "string",
                    "enum": [
                        "asc",
                        "desc"
                    ]
                },
                "total": {
                    "type": "integer"
                },
                "totalPages": {
                    "type": "integer"
                }
            }
        },
        "authsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {
                    "type": "string"
                },
                "signer": {
                    "type": "string"
                }
            }
        },
        "authsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "checks": {
                    "$ref": "#/definitions/authsdk.HealthChecks"
                }
            }
        },
        "jwtx.JWK": {
            "type": "object",
            "properties": {
                "kty": {
                    "type": "string"
                },
                "use": {
                    "type": "string"
                },
                "alg": {
                    "type": "string"
                },
                "kid": {
                    "type": "string"
                },
                "n": {
                    "type": "string"
                },
                "e": {
                    "type": "string"
                }
            }
        },
        "authsdk.JWKSResponse": {
            "type": "object",
            "properties": {
                "keys": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/jwtx.JWK"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        },
        "CookieAuth": {
            "type": "apiKey",
            "name": "accessToken",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Identity Service API",
	Description:      "Multi-tenant identity service: registration, login, rotating refresh tokens and role based access.\n\nAccess tokens are RS256 JWTs verifiable with the JWKS endpoint. Refresh tokens are HS256 and only this service can check them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
