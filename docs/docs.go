// Package docs holds the OpenAPI description served at /swagger. It follows
// the layout swag emits and is kept in sync with the handler annotations;
// running go generate replaces it with swag's output.
package docs

//go:generate swag init --dir .. --generalInfo cmd/fin-analyzer/main.go --output . --outputTypes go

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analytics/cashback-categories": {
            "post": {
                "description": "Total expenses per category for a calendar month",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Spend by category",
                "parameters": [
                    {
                        "description": "Year, month and optional operations",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.CashbackCategoriesRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "number"}}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        },
        "/analytics/investment-bank": {
            "post": {
                "description": "Sum of rounding differences of all expenses in a month",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Investment bank savings",
                "parameters": [
                    {
                        "description": "Month, rounding limit and optional operations",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.InvestmentBankRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.InvestmentBankResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        },
        "/analytics/phone-transactions": {
            "post": {
                "description": "Operations whose description contains a +7 phone number",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Operations with phone numbers",
                "parameters": [
                    {
                        "description": "Optional operations",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/dto.PhoneTransactionsRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}
                    }
                }
            }
        },
        "/analytics/spending-by-weekday": {
            "post": {
                "description": "Average expense per weekday over the 90 days ending at date (today by default)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Average spend per weekday",
                "parameters": [
                    {
                        "description": "Optional date and operations",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/dto.SpendingByWeekdayRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "number"}}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        },
        "/dashboard": {
            "get": {
                "description": "Greeting, card spend and cashback, top-5 operations, currency rates and stock prices from the start of the month up to date",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Main page",
                "parameters": [
                    {
                        "type": "string",
                        "description": "YYYY-MM-DD HH:MM:SS, defaults to now",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.Dashboard"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.CashbackCategoriesRequest": {
            "type": "object",
            "properties": {
                "month": {"type": "integer", "example": 6},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}},
                "year": {"type": "integer", "example": 2024}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.InvestmentBankRequest": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer", "example": 50},
                "month": {"type": "string", "example": "2024-06"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}
            }
        },
        "dto.InvestmentBankResponse": {
            "type": "object",
            "properties": {
                "invested": {"type": "number"},
                "limit": {"type": "integer"},
                "month": {"type": "string"}
            }
        },
        "dto.PhoneTransactionsRequest": {
            "type": "object",
            "properties": {
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}
            }
        },
        "dto.SpendingByWeekdayRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-06-03"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}
            }
        },
        "models.CardStat": {
            "type": "object",
            "properties": {
                "cashback": {"type": "integer"},
                "last_digits": {"type": "string"},
                "total_spent": {"type": "number"}
            }
        },
        "models.CurrencyRate": {
            "type": "object",
            "properties": {
                "currency": {"type": "string"},
                "rate": {"type": "number"}
            }
        },
        "models.Dashboard": {
            "type": "object",
            "properties": {
                "cards": {"type": "array", "items": {"$ref": "#/definitions/models.CardStat"}},
                "currency_rates": {"type": "array", "items": {"$ref": "#/definitions/models.CurrencyRate"}},
                "greeting": {"type": "string"},
                "stock_prices": {"type": "array", "items": {"$ref": "#/definitions/models.StockPrice"}},
                "top_transactions": {"type": "array", "items": {"$ref": "#/definitions/models.TopTransaction"}}
            }
        },
        "models.StockPrice": {
            "type": "object",
            "properties": {
                "price": {"type": "number"},
                "stock": {"type": "string"}
            }
        },
        "models.TopTransaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "card": {"type": "string"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "card_number": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "operation_date": {"type": "string"},
                "payment_amount": {"type": "number"},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fin Analyzer API",
	Description:      "Анализ банковских операций: инвесткопилка, переводы по номеру телефона, траты по категориям и дням недели",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
