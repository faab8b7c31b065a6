// Package docs registra a documentação OpenAPI servida em /swagger.
// Regenere com: swag init -g cmd/api/docs.go -o docs
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
        "/hpp/calculate": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["hpp"],
                "summary": "Calcular HPP",
                "parameters": [
                    {"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.HPPRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/storefront/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["storefront"],
                "summary": "Catálogo da loja",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reports/monthly": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Relatório mensal",
                "parameters": [
                    {"type": "integer", "description": "Mês (1-12)", "name": "month", "in": "query"},
                    {"type": "integer", "description": "Ano", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "details": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.HPPRequest": {
            "type": "object",
            "properties": {
                "base_material_cost": {"type": "number"},
                "components": {"type": "array", "items": {"type": "object"}},
                "margin_percent": {"type": "number"},
                "shrinkage_percent": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo contém as informações exportadas da documentação
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pasarantar API",
	Description:      "API de precificação (HPP), estoque, compras no mercado, pedidos e relatórios financeiros",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
