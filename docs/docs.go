// Package docs holds the OpenAPI document served under /swagger/ in builds
// tagged "swagger". Regenerate with `swag init -g cmd/folderd/docs.go -o docs`.
package docs

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
        "/analyze": {
            "post": {
                "description": "Asks the language model for the best folder for the file. Upstream failures and empty answers yield \"Uncategorized\" with status 200.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analyze"
                ],
                "summary": "Suggest a folder for a file",
                "parameters": [
                    {
                        "description": "File to classify",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.AnalyzeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.AnalyzeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "types.AnalyzeRequest": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string",
                    "example": "MATH 203 Lecture 3: Linear maps and matrices"
                },
                "filename": {
                    "type": "string",
                    "example": "week3_notes.pdf"
                },
                "files": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.FileEntry"
                    }
                },
                "folders": {
                    "description": "Deprecated: use Files with type \"folder\".",
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "types.AnalyzeResponse": {
            "type": "object",
            "properties": {
                "folder": {
                    "type": "string",
                    "example": "math203_lectures"
                }
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer",
                    "example": 400
                },
                "error": {
                    "type": "string",
                    "example": "invalid JSON body"
                }
            }
        },
        "types.FileEntry": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "example": "math203_lectures"
                },
                "path": {
                    "type": "string",
                    "example": "42/math203_lectures"
                },
                "size": {
                    "type": "integer",
                    "example": 0
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "file",
                        "folder"
                    ],
                    "example": "folder"
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
	Schemes:          []string{"http"},
	Title:            "folderd API",
	Description:      "Suggests a folder for a file by asking a locally hosted language model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
