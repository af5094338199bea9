// Package docs registers the Swagger description of the quotations API.
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
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/validate-session": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Authentication"],
                "summary": "Validate session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}}}
            }
        },
        "/api/quotations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "List quotations",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.QuotationSummary"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["quotations"],
                "summary": "Create quotation",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreateQuotationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Quotation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/quotations/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["quotations"],
                "summary": "Export quotations",
                "responses": {"200": {"description": "xlsx workbook", "schema": {"type": "file"}}}
            }
        },
        "/api/quotations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "Get quotation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Quotation"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/quotations/{id}/pdf": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "tags": ["quotations"],
                "summary": "Generate quotation PDF",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/models.GeneratePDFRequest"}}
                ],
                "responses": {"200": {"description": "PDF file", "schema": {"type": "file"}}}
            }
        },
        "/api/quotations/{id}/email": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["quotations"],
                "summary": "Email quotation",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/models.GeneratePDFRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "422": {"description": "No customer email", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "SMTP not configured", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/quotations/{id}/qr": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["image/png"],
                "tags": ["quotations"],
                "summary": "Quotation QR code",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "PNG image", "schema": {"type": "file"}},
                    "409": {"description": "PDF not saved yet", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/quotation_pdf/preview": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "tags": ["quotations"],
                "summary": "Preview quotation PDF",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.PreviewPDFRequest"}}],
                "responses": {"200": {"description": "PDF file", "schema": {"type": "file"}}}
            }
        },
        "/api/settings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["settings"],
                "summary": "Get company settings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Settings"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["settings"],
                "summary": "Update company settings",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateSettingsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Settings"}}}
            }
        },
        "/api/products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "List active products",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["products"],
                "summary": "Create product",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Product"}}}
            }
        },
        "/api/products/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["products"],
                "summary": "Update product",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}}}
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Profile"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["users"],
                "summary": "Create user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/users/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["users"],
                "summary": "Update user",
                "description": "Changes name, role, phone, active flag or password. Admins cannot suspend or demote themselves.",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["activity-logs"],
                "summary": "Get activity logs",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/api/get-file": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["files"],
                "summary": "Serve stored file",
                "parameters": [{"type": "string", "name": "file", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "403": {"description": "Quotation PDF of another user", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string", "example": "Invalid input"}, "details": {"type": "string"}}},
        "models.MessageResponse": {"type": "object", "properties": {"message": {"type": "string", "example": "ok"}}},
        "models.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "models.LoginResponse": {"type": "object", "properties": {"access_token": {"type": "string"}, "expires_at": {"type": "integer"}, "profile": {"$ref": "#/definitions/models.Profile"}}},
        "models.Profile": {"type": "object", "properties": {"id": {"type": "string"}, "full_name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "sales"]}, "active": {"type": "boolean"}, "phone": {"type": "string"}}},
        "models.CreateUserRequest": {"type": "object", "required": ["full_name", "email", "password"], "properties": {"full_name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "role": {"type": "string", "enum": ["admin", "sales"]}, "phone": {"type": "string"}}},
        "models.UpdateUserRequest": {"type": "object", "properties": {"full_name": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "sales"]}, "active": {"type": "boolean"}, "phone": {"type": "string"}, "password": {"type": "string", "minLength": 8}}},
        "models.AddOn": {"type": "object", "properties": {"name": {"type": "string"}, "price": {"type": "number"}}},
        "models.SpecPair": {"type": "object", "properties": {"key": {"type": "string"}, "value": {"type": "string"}}},
        "models.Term": {"type": "object", "properties": {"title": {"type": "string"}, "text": {"type": "string"}}},
        "models.LineItem": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"},
            "features": {"type": "array", "items": {"type": "string"}},
            "specs": {"type": "array", "items": {"$ref": "#/definitions/models.SpecPair"}},
            "price": {"type": "number"},
            "selectedAddons": {"type": "array", "items": {"$ref": "#/definitions/models.AddOn"}},
            "image_format": {"type": "string", "enum": ["wide", "tall"]},
            "image_url": {"type": "string"}}},
        "models.Quotation": {"type": "object", "properties": {
            "id": {"type": "string"}, "quotation_number": {"type": "string", "example": "RLE-107"},
            "created_by": {"type": "string"}, "customer_name": {"type": "string"}, "customer_phone": {"type": "string"},
            "customer_email": {"type": "string"}, "customer_address": {"type": "string"}, "validity_days": {"type": "integer"},
            "items_json": {"type": "array", "items": {"$ref": "#/definitions/models.LineItem"}},
            "subtotal": {"type": "number"}, "tax_total": {"type": "number"}, "discount_total": {"type": "number"},
            "grand_total": {"type": "number"}, "pdf_url": {"type": "string"}, "status": {"type": "string"},
            "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "models.QuotationSummary": {"type": "object", "properties": {
            "id": {"type": "string"}, "quotation_number": {"type": "string"}, "customer_name": {"type": "string"},
            "grand_total": {"type": "number"}, "created_at": {"type": "string"}, "pdf_url": {"type": "string"},
            "status": {"type": "string"}, "created_by": {"type": "string"}, "created_by_name": {"type": "string"}}},
        "models.CreateQuotationRequest": {"type": "object", "required": ["customer_name", "items"], "properties": {
            "customer_name": {"type": "string"}, "customer_phone": {"type": "string"}, "customer_email": {"type": "string"},
            "customer_address": {"type": "string"}, "validity_days": {"type": "integer"},
            "items": {"type": "array", "items": {"$ref": "#/definitions/models.LineItem"}},
            "discount_total": {"type": "number"}}},
        "models.GeneratePDFRequest": {"type": "object", "properties": {
            "selectedTerms": {"type": "array", "items": {"$ref": "#/definitions/models.Term"}},
            "currency": {"type": "string", "enum": ["INR", "USD"]},
            "upload": {"type": "boolean"}}},
        "models.PreviewPDFRequest": {"type": "object", "required": ["items"], "properties": {
            "quotation": {"$ref": "#/definitions/models.Quotation"},
            "items": {"type": "array", "items": {"$ref": "#/definitions/models.LineItem"}},
            "settings": {"$ref": "#/definitions/models.Settings"},
            "selectedTerms": {"type": "array", "items": {"$ref": "#/definitions/models.Term"}},
            "currency": {"type": "string", "enum": ["INR", "USD"]}}},
        "models.Settings": {"type": "object", "properties": {
            "id": {"type": "integer"}, "company_name": {"type": "string"}, "company_logo": {"type": "string"},
            "company_address": {"type": "string"}, "company_phone": {"type": "string"}, "company_email": {"type": "string"},
            "tax_rate": {"type": "number"}, "currency_symbol": {"type": "string"}, "updated_at": {"type": "string"}}},
        "models.UpdateSettingsRequest": {"type": "object", "properties": {
            "company_name": {"type": "string"}, "company_logo": {"type": "string"}, "company_address": {"type": "string"},
            "company_phone": {"type": "string"}, "company_email": {"type": "string"}, "tax_rate": {"type": "number"},
            "currency_symbol": {"type": "string"}}},
        "models.Product": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"},
            "image_url": {"type": "string"}, "sku": {"type": "string"},
            "specs": {"type": "array", "items": {"$ref": "#/definitions/models.SpecPair"}},
            "features": {"type": "array", "items": {"type": "string"}}, "category": {"type": "string"},
            "addons": {"type": "array", "items": {"$ref": "#/definitions/models.AddOn"}},
            "image_format": {"type": "string", "enum": ["wide", "tall"]}, "active": {"type": "boolean"}}},
        "models.ProductRequest": {"type": "object", "required": ["name"], "properties": {
            "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"},
            "image_url": {"type": "string"}, "sku": {"type": "string"},
            "specs": {"type": "array", "items": {"$ref": "#/definitions/models.SpecPair"}},
            "features": {"type": "array", "items": {"type": "string"}}, "category": {"type": "string"},
            "addons": {"type": "array", "items": {"$ref": "#/definitions/models.AddOn"}},
            "image_format": {"type": "string", "enum": ["wide", "tall"]}, "active": {"type": "boolean"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Quotations API",
	Description:      "Quotation builder backend: numbering, PDF generation, storage and mail.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
