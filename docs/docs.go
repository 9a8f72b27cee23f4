// Package docs holds the Swagger document served at /swagger. It is maintained
// by hand alongside the handler annotations in internal/handlers.
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
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "Comma separated sort keys: price, rating, discountPercentage. Prefix with - for descending.", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Create product",
                "parameters": [
                    {"description": "Product", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/products/search/{name}": {
            "get": {
                "description": "Case-insensitive title search",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Search products",
                "parameters": [
                    {"type": "string", "description": "Part of the title", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductListResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/products/{productId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Get product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "productId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Products"],
                "summary": "Delete product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "productId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Titles cannot be changed",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Update product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "productId", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/confirmUser": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Resend confirmation email",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/deleteMe": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Schedule deletion in 30 days. Logging in before then cancels it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Delete account",
                "parameters": [
                    {"description": "Password, twice", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.DeleteMeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DeletionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/forgotPassword": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Forgot password",
                "parameters": [
                    {"description": "Account email", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ForgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/resetPassword/{token}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Reset password",
                "parameters": [
                    {"type": "string", "description": "Emailed token", "name": "token", "in": "path", "required": true},
                    {"description": "New password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/sendOtp": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Send an OTP to the user's phone number unless the second factor is already verified",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Send OTP",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Sign up",
                "parameters": [
                    {"description": "Registration details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/twoFactorAuth/{sid}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Verify OTP",
                "parameters": [
                    {"type": "string", "description": "Challenge handle", "name": "sid", "in": "path", "required": true},
                    {"description": "OTP code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.OTPRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/updateMe": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Change name, email or phone number. Passwords are changed through /users/updatePassword.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update profile",
                "parameters": [
                    {"description": "Profile changes", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdateMeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/updatePassword": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update password",
                "parameters": [
                    {"description": "Current and new password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.UpdatePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/verifyEmail/{token}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Verify email",
                "parameters": [
                    {"type": "string", "description": "Emailed token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.AuthResponse": {
            "description": "Authentication response",
            "type": "object",
            "properties": {
                "cooldownMinutes": {"type": "integer"},
                "message": {"type": "string", "example": "an OTP has been sent to your phone number"},
                "sessionId": {"description": "OTP challenge handle for /users/twoFactorAuth/{sid}", "type": "string"},
                "status": {"type": "string", "example": "success"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "handlers.DeletionResponse": {
            "type": "object",
            "properties": {
                "deletionDeadline": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "check your email for the reset link"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "handlers.ProductListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
                "results": {"type": "integer", "example": 1},
                "status": {"type": "string", "example": "success"}
            }
        },
        "handlers.ProductResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/models.Product"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "brand": {"type": "string"},
                "category": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "discountPercentage": {"type": "number", "example": 12.96},
                "id": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "price": {"type": "number", "example": 549},
                "productOwner": {"type": "string"},
                "rating": {"type": "number", "example": 4.69},
                "stock": {"type": "integer", "example": 94},
                "thumbnail": {"type": "string"},
                "title": {"type": "string", "example": "iPhone 13"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.ProductPatch": {
            "type": "object",
            "properties": {
                "brand": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "discountPercentage": {"type": "number"},
                "images": {"type": "array", "items": {"type": "string"}},
                "price": {"type": "number"},
                "rating": {"type": "number"},
                "stock": {"type": "integer"},
                "thumbnail": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "email": {"description": "User email", "type": "string", "example": "alice@example.com"},
                "id": {"description": "User ID", "type": "string", "example": "3f1c2b9e-6a0d-4c4e-9d57-1b7e2a4f9c10"},
                "image": {"description": "Profile image", "type": "string", "example": "img.jpg"},
                "name": {"description": "Display name", "type": "string", "example": "Alice"},
                "phoneNumber": {"description": "E.164 phone number", "type": "string", "example": "+2348012345678"},
                "twoFactorAuth": {"type": "boolean"},
                "updatedAt": {"type": "string"}
            }
        },
        "services.CreateProductRequest": {
            "type": "object",
            "required": ["description", "price", "thumbnail", "title"],
            "properties": {
                "brand": {"type": "string", "example": "Apple"},
                "category": {"type": "string", "example": "smartphones"},
                "description": {"type": "string", "example": "An apple mobile which is nothing like apple"},
                "discountPercentage": {"type": "number", "maximum": 100, "minimum": 0, "example": 12.96},
                "images": {"type": "array", "items": {"type": "string"}},
                "price": {"type": "number", "example": 549},
                "rating": {"type": "number", "maximum": 5, "minimum": 0, "example": 4.69},
                "stock": {"type": "integer", "minimum": 0, "example": 94},
                "thumbnail": {"type": "string", "example": "/static/images/1/thumbnail.jpg"},
                "title": {"type": "string", "maxLength": 200, "minLength": 1, "example": "iPhone 9"}
            }
        },
        "services.DeleteMeRequest": {
            "type": "object",
            "required": ["password", "passwordConfirm"],
            "properties": {
                "password": {"type": "string"},
                "passwordConfirm": {"type": "string"}
            }
        },
        "services.ErrorResponse": {
            "type": "object",
            "properties": {
                "debug": {"description": "Internal error detail, development only", "type": "string"},
                "details": {"description": "Validation details", "type": "object", "additionalProperties": {"type": "string"}},
                "error": {"description": "Error message", "type": "string"}
            }
        },
        "services.ForgotPasswordRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"}
            }
        },
        "services.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "password": {"type": "string", "example": "Passw0rd!"}
            }
        },
        "services.OTPRequest": {
            "type": "object",
            "required": ["OTP"],
            "properties": {
                "OTP": {"type": "string", "maxLength": 10, "minLength": 4, "example": "123456"}
            }
        },
        "services.ResetPasswordRequest": {
            "type": "object",
            "required": ["password", "passwordConfirm"],
            "properties": {
                "password": {"type": "string", "minLength": 8, "example": "N3wPassw0rd!"},
                "passwordConfirm": {"type": "string", "example": "N3wPassw0rd!"}
            }
        },
        "services.SignUpRequest": {
            "type": "object",
            "required": ["email", "name", "password", "passwordConfirm", "phoneNumber"],
            "properties": {
                "email": {"description": "User email address", "type": "string", "example": "alice@example.com"},
                "image": {"description": "Profile image", "type": "string", "example": "img.jpg"},
                "name": {"description": "Display name", "type": "string", "minLength": 2, "example": "Alice"},
                "password": {"description": "User password", "type": "string", "minLength": 8, "example": "Passw0rd!"},
                "passwordConfirm": {"description": "Must equal password", "type": "string", "example": "Passw0rd!"},
                "phoneNumber": {"description": "Phone number receiving OTPs", "type": "string", "example": "+2348012345678"}
            }
        },
        "services.UpdateMeRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "minLength": 2},
                "phoneNumber": {"type": "string"}
            }
        },
        "services.UpdatePasswordRequest": {
            "type": "object",
            "required": ["password", "passwordConfirm", "passwordCurrent"],
            "properties": {
                "password": {"type": "string", "minLength": 8},
                "passwordConfirm": {"type": "string"},
                "passwordCurrent": {"type": "string"}
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
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Shopwise Backend API",
	Description:      "Accounts, two-factor authentication and product catalogue",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
