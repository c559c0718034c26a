// Package docs registers the OpenAPI document served at /swagger/doc.json.
// It is kept by hand in step with the handler annotations; swag init does not own it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://codeberg.org/inkwell/billing"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/billing/payments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["billing"],
                "security": [{"BearerAuth": []}],
                "description": "With a bearer token only the token owner's history is readable",
                "summary": "List recorded payments of an owner",
                "parameters": [
                    {"type": "string", "description": "owner email (defaults to the token email)", "name": "email", "in": "query"},
                    {"type": "integer", "description": "max entries (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/billing.PaymentsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/billing/plans": {
            "get": {
                "produces": ["application/json"],
                "tags": ["billing"],
                "summary": "List purchasable plans",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/billing.PlansResponse"}}
                }
            }
        },
        "/api/billing/upgrade": {
            "post": {
                "description": "action=create_order asks the payment gateway for an order; action=verify_payment checks the checkout signature and adds the plan's credits to the owner's ceiling",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["billing"],
                "summary": "Create a payment order or apply a verified payment",
                "parameters": [
                    {"description": "upgrade action", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/billing.UpgradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/billing.UpgradeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.BillingErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.BillingErrorResponse"}}
                }
            }
        },
        "/api/v1/usage": {
            "get": {
                "description": "Sums the owner's recorded usage and compares it with their credit ceiling",
                "produces": ["application/json"],
                "tags": ["usage"],
                "summary": "Get an owner's credit usage",
                "parameters": [
                    {"type": "string", "description": "owner email (defaults to the token email)", "name": "email", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usage.UsageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.BillingErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.BillingErrorResponse"}}
                }
            }
        },
        "/api/v1/usage/records": {
            "post": {
                "description": "Appends a usage record; the response length is the number of credits consumed",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["usage"],
                "summary": "Record one generation event",
                "parameters": [
                    {"description": "usage record", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/usage.RecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/usage.RecordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.BillingErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.BillingErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Response"}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Pings the data store and redis when configured",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.ReadyResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.ReadyResponse"}}
                }
            }
        }
    },
    "definitions": {
        "billing.PaymentsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "payments": {"type": "array", "items": {"$ref": "#/definitions/payments.Entry"}}
            }
        },
        "billing.PlansResponse": {
            "type": "object",
            "properties": {
                "plans": {"type": "array", "items": {"$ref": "#/definitions/plans.Plan"}}
            }
        },
        "billing.UpgradeRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string"},
                "amount": {"type": "number"},
                "credits": {"type": "string"},
                "email": {"type": "string"},
                "orderId": {"type": "string"},
                "paymentId": {"type": "string"},
                "planName": {"type": "string"},
                "signature": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "billing.UpgradeResponse": {
            "type": "object",
            "properties": {
                "ceiling": {"type": "integer"},
                "credits": {"type": "integer"},
                "ledgerRecorded": {"type": "boolean"},
                "message": {"type": "string"},
                "plan": {"type": "string"},
                "replayed": {"type": "boolean"},
                "success": {"type": "boolean"}
            }
        },
        "errors.BillingErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "retryable": {"type": "boolean"},
                "success": {"type": "boolean"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "health.ReadyResponse": {
            "type": "object",
            "properties": {
                "checks": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string"}
            }
        },
        "health.Response": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "payments.Entry": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "created_at": {"type": "string"},
                "credits_added": {"type": "integer"},
                "currency": {"type": "string"},
                "id": {"type": "string"},
                "order_id": {"type": "string"},
                "payer_email": {"type": "string"},
                "payer_id": {"type": "string"},
                "plan_name": {"type": "string"},
                "transaction_id": {"type": "string"}
            }
        },
        "plans.Plan": {
            "type": "object",
            "properties": {
                "credits": {"type": "integer"},
                "features": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"},
                "price_inr": {"type": "integer"},
                "price_usd": {"type": "number"}
            }
        },
        "usage.RecordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "response": {"type": "string"},
                "templateSlug": {"type": "string"}
            }
        },
        "usage.RecordResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "length": {"type": "integer"}
            }
        },
        "usage.UsageResponse": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "band": {"type": "string", "enum": ["normal", "warning", "exhausted"]},
                "ceiling": {"type": "integer"},
                "email": {"type": "string"},
                "known": {"type": "boolean"},
                "plan": {"type": "string"},
                "remaining": {"type": "integer"},
                "total": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token identifying the owner. Format: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Inkwell Billing API",
	Description:      "Credit usage metering and plan upgrades reconciled against Razorpay payments",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
