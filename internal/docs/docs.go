// Package docs registra la especificación Swagger servida en /swagger/*.
// Se regenera con `swag init -g cmd/api/main.go -o internal/docs`.
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
        "/records": {
            "get": {
                "description": "Búsqueda libre multi-término o consulta campo:valor, filtros exactos y orden multi-columna.",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Buscar, filtrar y ordenar registros de ganado",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Texto de búsqueda", "name": "q", "in": "query"},
                    {"type": "string", "description": "Estado de salud exacto", "name": "health", "in": "query"},
                    {"type": "string", "description": "Nombre de raza exacto", "name": "breed", "in": "query"},
                    {"type": "boolean", "description": "Solo activos / inactivos", "name": "active", "in": "query"},
                    {"type": "integer", "description": "ID de ubicación", "name": "location", "in": "query"},
                    {"type": "string", "description": "Orden, p.ej. age:asc,name:desc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "parámetros inválidos"},
                    "401": {"description": "unauthorized"},
                    "503": {"description": "fuente de datos no disponible"}
                }
            }
        },
        "/records/health-statuses": {
            "get": {
                "description": "Lista ordenada y sin duplicados de los estados de salud del snapshot actual, para poblar el filtro health.",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Estados de salud presentes en el rodeo",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "401": {"description": "unauthorized"},
                    "503": {"description": "fuente de datos no disponible"}
                }
            }
        },
        "/records/sort": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Aplicar un click de encabezado al orden actual",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "invalid json / column required"}
                }
            }
        },
        "/layout": {
            "get": {
                "produces": ["application/json"],
                "tags": ["layout"],
                "summary": "Layout de columnas del usuario",
                "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}
            }
        },
        "/layout/visible": {
            "get": {
                "produces": ["application/json"],
                "tags": ["layout"],
                "summary": "Columnas visibles en orden",
                "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}
            }
        },
        "/layout/columns/{key}/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["layout"],
                "summary": "Mostrar / ocultar una columna",
                "parameters": [{"type": "string", "description": "Key de la columna", "name": "key", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "unknown column"}}
            }
        },
        "/layout/reorder": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["layout"],
                "summary": "Intercambiar el orden de dos columnas (drag & drop)",
                "responses": {"200": {"description": "OK"}, "400": {"description": "invalid json"}, "404": {"description": "unknown column"}}
            }
        },
        "/layout/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["layout"],
                "summary": "Restaurar el layout por defecto",
                "responses": {"200": {"description": "OK"}}
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
	Title:            "Cattle Records API",
	Description:      "Búsqueda, filtros, orden multi-columna y layout de columnas del registro de ganado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
